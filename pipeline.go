package textmesh

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded glyph quad shader source.
//
//go:embed shaders/text.wgsl
var textShaderSource string

// textUniformSize is the byte size of the text uniform buffer.
// Layout: transform (mat4x4<f32>) = 64 bytes + color (vec4<f32>) =
// 16 bytes = 80 bytes.
const textUniformSize = 80

// TextPipelineConfig holds configuration for a TextPipeline. The zero
// value selects defaults.
type TextPipelineConfig struct {
	// TargetFormat is the color attachment format the pipeline renders
	// into. Defaults to [gputypes.TextureFormatBGRA8Unorm].
	TargetFormat gputypes.TextureFormat

	// SampleCount is the MSAA sample count of the render target.
	// Defaults to 1.
	SampleCount uint32
}

// DefaultTextPipelineConfig returns default configuration.
func DefaultTextPipelineConfig() TextPipelineConfig {
	return TextPipelineConfig{
		TargetFormat: gputypes.TextureFormatBGRA8Unorm,
		SampleCount:  1,
	}
}

// TextPipeline owns the GPU render pipeline drawing glyph quads
// produced by a [Renderer]: shader module, bind group layout, pipeline
// layout, render pipeline and atlas sampler. The pipeline blends with
// premultiplied alpha and samples glyph coverage from the red channel
// of the atlas texture.
//
// Bind groups pair a caller-provided uniform buffer and atlas texture
// view with the pipeline's sampler; create one per atlas via
// CreateBindGroup.
type TextPipeline struct {
	device hal.Device
	queue  hal.Queue
	config TextPipelineConfig

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	sampler       hal.Sampler

	initialized bool
}

// NewTextPipeline creates a text pipeline. GPU objects are not created
// until Init.
func NewTextPipeline(device hal.Device, queue hal.Queue, config TextPipelineConfig) (*TextPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if config.TargetFormat == 0 {
		config.TargetFormat = DefaultTextPipelineConfig().TargetFormat
	}
	if config.SampleCount == 0 {
		config.SampleCount = DefaultTextPipelineConfig().SampleCount
	}

	return &TextPipeline{
		device: device,
		queue:  queue,
		config: config,
	}, nil
}

// Config returns the pipeline configuration.
func (p *TextPipeline) Config() TextPipelineConfig {
	return p.config
}

// Init compiles the shader and creates the GPU pipeline objects.
// Calling Init on an initialized pipeline is a no-op.
func (p *TextPipeline) Init() error {
	if p.initialized {
		return nil
	}
	if err := p.createPipeline(); err != nil {
		p.destroyPipeline()
		return err
	}
	p.initialized = true
	return nil
}

// IsInitialized reports whether Init has completed.
func (p *TextPipeline) IsInitialized() bool {
	return p.initialized
}

// createShaderModule compiles the embedded WGSL source, falling back to
// SPIR-V through naga for backends that cannot consume WGSL directly.
func (p *TextPipeline) createShaderModule() (hal.ShaderModule, error) {
	shader, wgslErr := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "text_shader",
		Source: hal.ShaderSource{WGSL: textShaderSource},
	})
	if wgslErr == nil {
		return shader, nil
	}

	Logger().Warn("textmesh: WGSL shader compilation failed, falling back to SPIR-V", "error", wgslErr)

	spirvBytes, err := naga.Compile(textShaderSource)
	if err != nil {
		return nil, fmt.Errorf("textmesh: compile text shader: %w", err)
	}
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	shader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "text_shader",
		Source: hal.ShaderSource{SPIRV: spirvCode},
	})
	if err != nil {
		return nil, fmt.Errorf("textmesh: create text shader module: %w", err)
	}
	return shader, nil
}

func (p *TextPipeline) createPipeline() error {
	shader, err := p.createShaderModule()
	if err != nil {
		return err
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: TextUniforms (uniform buffer, vertex+fragment)
	//   Binding 1: Glyph atlas texture (texture_2d, fragment)
	//   Binding 2: Sampler (fragment)
	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "text_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("textmesh: create text uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "text_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("textmesh: create text pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "text_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("textmesh: create text sampler: %w", err)
	}
	p.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "text_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    textVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.config.TargetFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: p.config.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("textmesh: create text pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// CreateBindGroup builds a bind group pairing a uniform buffer and a
// glyph atlas texture view with the pipeline's sampler. The uniform
// buffer must hold at least textUniformSize bytes laid out by
// [BuildTextUniformData].
func (p *TextPipeline) CreateBindGroup(uniformBuffer hal.Buffer, atlasView hal.TextureView) (hal.BindGroup, error) {
	if !p.initialized {
		return nil, ErrPipelineNotInitialized
	}

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "text_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuffer.NativeHandle(), Offset: 0, Size: textUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: atlasView.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("textmesh: create text bind group: %w", err)
	}
	return bindGroup, nil
}

// RecordDraws records the indexed draw for a renderer's current text
// into an existing render pass. Does nothing when the renderer has no
// glyphs or no reserved buffers.
func (p *TextPipeline) RecordDraws(pass hal.RenderPassEncoder, renderer *Renderer, bindGroup hal.BindGroup) error {
	if !p.initialized {
		return ErrPipelineNotInitialized
	}
	if renderer.IndexCount() == 0 || renderer.VertexBuffer() == nil {
		return nil
	}

	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetVertexBuffer(0, renderer.VertexBuffer().Raw(), 0)
	pass.SetIndexBuffer(renderer.IndexBuffer().Raw(), renderer.IndexFormat(), 0)
	pass.DrawIndexed(renderer.IndexCount(), 1, 0, 0, 0)
	return nil
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times.
func (p *TextPipeline) Destroy() {
	p.destroyPipeline()
	p.initialized = false
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (p *TextPipeline) destroyPipeline() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// textVertexLayout returns the vertex buffer layout matching
// VertexInput in text.wgsl:
//
//	location 0: position (vec2<f32>)
//	location 1: tex_coord (vec2<f32>)
func textVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // tex_coord
			},
		},
	}
}

// BuildTextUniformData serializes the 80-byte uniform block read by the
// text shader: a 4x4 transform mapping cursor space to clip space
// followed by a premultiplied RGBA color.
func BuildTextUniformData(transform [16]float32, color [4]float32) []byte {
	buf := make([]byte, textUniformSize)
	off := 0
	for _, v := range transform {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range color {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return buf
}

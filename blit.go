package gfxgtk

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/present.wgsl
var presentShaderSource string

// presentPipeline is the fullscreen blit used by the default postprocess
// when the color target is single-sampled (multisampled targets go
// through a hardware resolve pass instead). The pipeline is built once
// per context; the bind group referencing the color view is rebuilt
// whenever the target generation changes.
type presentPipeline struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	bindGroup hal.BindGroup
	bindGen   uint64
}

// compileToSPIRV compiles WGSL source to SPIR-V words. SPIR-V is
// little-endian 32-bit words.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// newPresentPipeline compiles the blit shader and builds the render
// pipeline targeting the given presentation color format. On any partial
// failure the already-created resources are destroyed.
func newPresentPipeline(device hal.Device, target ColorFormat) (*presentPipeline, error) {
	p := &presentPipeline{}

	spirv, err := compileToSPIRV(presentShaderSource)
	if err != nil {
		return nil, err
	}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "gfxgtk_present_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create present shader: %w", err)
	}
	p.shader = shader

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "gfxgtk_present_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create present bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "gfxgtk_present_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create present pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "gfxgtk_present_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    target.TextureFormat(),
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create present pipeline: %w", err)
	}
	p.pipeline = pipeline

	return p, nil
}

// blit records a fullscreen pass copying source into dest. The bind group
// is cached per target generation and rebuilt when generation changes.
func (p *presentPipeline) blit(device hal.Device, encoder hal.CommandEncoder,
	source, dest hal.TextureView, generation uint64) error {
	if p.bindGroup == nil || p.bindGen != generation {
		if p.bindGroup != nil {
			device.DestroyBindGroup(p.bindGroup)
			p.bindGroup = nil
		}
		bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "gfxgtk_present_bind",
			Layout: p.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{
					Binding: 0,
					Resource: gputypes.TextureViewBinding{
						TextureView: source.NativeHandle(),
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("create present bind group: %w", err)
		}
		p.bindGroup = bg
		p.bindGen = generation
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "gfxgtk_present_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       dest,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()
	return nil
}

// destroy releases all pipeline resources in reverse creation order.
// Safe on a partially built pipeline and safe to call twice.
func (p *presentPipeline) destroy(device hal.Device) {
	if p.bindGroup != nil {
		device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

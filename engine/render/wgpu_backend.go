package render

import (
	_ "embed"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/oxwell/brdfview/engine/core"
)

//go:embed shaders/scene.wgsl
var sceneShaderSource string

//go:embed shaders/overlay.wgsl
var overlayShaderSource string

// overlayVertexStride is the packed size of one overlay vertex:
// vec2 position + vec4 color, all float32.
const overlayVertexStride = 24

type wgpuBackend struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format    wgpu.TextureFormat
	alphaMode wgpu.CompositeAlphaMode

	scenePipeline   *wgpu.RenderPipeline
	sceneBindLayout *wgpu.BindGroupLayout
	overlayPipeline *wgpu.RenderPipeline

	textures    map[TextureHandle]*targetTexture
	buffers     map[BufferHandle]*trackedBuffer
	bindGroups  map[[2]BufferHandle]*wgpu.BindGroup
	nextTexture TextureHandle
	nextBuffer  BufferHandle
}

type targetTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

type trackedBuffer struct {
	buffer *wgpu.Buffer
	size   int
}

var _ Backend = &wgpuBackend{}

// NewBackend creates the WebGPU device context: instance, window surface,
// hardware adapter (software fallback only when forceFallback is set), device
// and queue, plus the scene and overlay pipelines. Every step that can fail
// wraps its cause in an InitError; there is no partial success.
//
// Parameters:
//   - surfaceDesc: the platform surface descriptor obtained from the window
//   - forceFallback: request a software adapter instead of hardware
//
// Returns:
//   - Backend: the initialized backend
//   - error: an InitError naming the first step that failed
func NewBackend(surfaceDesc *wgpu.SurfaceDescriptor, forceFallback bool) (Backend, error) {
	runtime.LockOSThread()
	b := &wgpuBackend{
		textures:   make(map[TextureHandle]*targetTexture),
		buffers:    make(map[BufferHandle]*trackedBuffer),
		bindGroups: make(map[[2]BufferHandle]*wgpu.BindGroup),
	}

	b.instance = wgpu.CreateInstance(nil)
	if b.instance == nil {
		return nil, core.NewInitError("create instance", fmt.Errorf("wgpu instance unavailable"))
	}

	b.surface = b.instance.CreateSurface(surfaceDesc)
	if b.surface == nil {
		b.Release()
		return nil, core.NewInitError("create surface", fmt.Errorf("no compatible surface"))
	}

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallback,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, core.NewInitError("request adapter", err)
	}
	b.adapter = adapter

	device, err := b.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		b.Release()
		return nil, core.NewInitError("request device", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, core.NewInitError("query surface capabilities", fmt.Errorf("surface reports no texture formats"))
	}
	b.format = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]

	if err := b.initPipelines(); err != nil {
		b.Release()
		return nil, err
	}

	core.LogInfo("gpu device ready", "fallbackAdapter", forceFallback, "surfaceFormat", b.format.String())
	return b, nil
}

func (b *wgpuBackend) initPipelines() error {
	sceneModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "scene_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: sceneShaderSource},
	})
	if err != nil {
		return core.NewInitError("compile scene shader", err)
	}
	defer sceneModule.Release()

	b.sceneBindLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "scene_bind_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return core.NewInitError("create bind group layout", err)
	}

	sceneLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "scene_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.sceneBindLayout},
	})
	if err != nil {
		return core.NewInitError("create pipeline layout", err)
	}
	defer sceneLayout.Release()

	b.scenePipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "scene_pipeline",
		Layout: sceneLayout,
		Vertex: wgpu.VertexState{
			Module:     sceneModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 12,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     sceneModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
	})
	if err != nil {
		return core.NewInitError("create scene pipeline", err)
	}

	overlayModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "overlay_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: overlayShaderSource},
	})
	if err != nil {
		return core.NewInitError("compile overlay shader", err)
	}
	defer overlayModule.Release()

	overlayLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "overlay_pipeline_layout",
	})
	if err != nil {
		return core.NewInitError("create overlay pipeline layout", err)
	}
	defer overlayLayout.Release()

	b.overlayPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "overlay_pipeline",
		Layout: overlayLayout,
		Vertex: wgpu.VertexState{
			Module:     overlayModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: overlayVertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     overlayModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: b.format,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
	})
	if err != nil {
		return core.NewInitError("create overlay pipeline", err)
	}
	return nil
}

func (b *wgpuBackend) ConfigureSurface(width, height int, mode PresentMode) error {
	presentMode := wgpu.PresentModeFifo
	if mode == PresentModeImmediate {
		presentMode = wgpu.PresentModeImmediate
	}
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopyDst,
		Format:      b.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode,
		AlphaMode:   b.alphaMode,
	})
	core.LogDebug("surface configured", "width", width, "height", height, "presentMode", presentMode.String())
	return nil
}

func (b *wgpuBackend) CreateTargetTexture(width, height int) (TextureHandle, error) {
	texture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "frame_target",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        b.format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return 0, core.NewInitError("create frame target texture", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return 0, core.NewInitError("create frame target view", err)
	}

	b.nextTexture++
	b.textures[b.nextTexture] = &targetTexture{texture: texture, view: view}
	return b.nextTexture, nil
}

func (b *wgpuBackend) ReleaseTexture(handle TextureHandle) {
	t, ok := b.textures[handle]
	if !ok {
		return
	}
	t.view.Release()
	t.texture.Release()
	delete(b.textures, handle)
}

func (b *wgpuBackend) CreateVertexBuffer(data []byte) (BufferHandle, error) {
	return b.createInitBuffer("vertex_buffer", data, wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst)
}

func (b *wgpuBackend) CreateIndexBuffer(data []byte) (BufferHandle, error) {
	return b.createInitBuffer("index_buffer", data, wgpu.BufferUsageIndex|wgpu.BufferUsageCopyDst)
}

func (b *wgpuBackend) createInitBuffer(label string, data []byte, usage wgpu.BufferUsage) (BufferHandle, error) {
	buffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            usage,
		MappedAtCreation: false,
	})
	if err != nil {
		return 0, core.NewInitError("create "+label, err)
	}
	b.queue.WriteBuffer(buffer, 0, data)
	b.nextBuffer++
	b.buffers[b.nextBuffer] = &trackedBuffer{buffer: buffer, size: len(data)}
	return b.nextBuffer, nil
}

func (b *wgpuBackend) CreateUniformBuffer(size int) (BufferHandle, error) {
	buffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "uniform_buffer",
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return 0, core.NewInitError("create uniform buffer", err)
	}
	b.nextBuffer++
	b.buffers[b.nextBuffer] = &trackedBuffer{buffer: buffer, size: size}
	return b.nextBuffer, nil
}

func (b *wgpuBackend) WriteBuffer(handle BufferHandle, data []byte) error {
	tracked, ok := b.buffers[handle]
	if !ok {
		return fmt.Errorf("write to unknown buffer %d", handle)
	}
	if len(data) != tracked.size {
		return fmt.Errorf("buffer %d write size mismatch: got %d bytes, buffer holds %d", handle, len(data), tracked.size)
	}
	b.queue.WriteBuffer(tracked.buffer, 0, data)
	return nil
}

// bindGroupFor returns the cached bind group for a scene/object buffer pair,
// creating it on first use. The pair is stable for the life of the buffers so
// the cache never needs invalidation.
func (b *wgpuBackend) bindGroupFor(scene, object BufferHandle) (*wgpu.BindGroup, error) {
	key := [2]BufferHandle{scene, object}
	if bg, ok := b.bindGroups[key]; ok {
		return bg, nil
	}
	sceneBuf, ok := b.buffers[scene]
	if !ok {
		return nil, fmt.Errorf("unknown scene buffer %d", scene)
	}
	objectBuf, ok := b.buffers[object]
	if !ok {
		return nil, fmt.Errorf("unknown object buffer %d", object)
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "scene_bind_group",
		Layout: b.sceneBindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: sceneBuf.buffer, Size: uint64(sceneBuf.size)},
			{Binding: 1, Buffer: objectBuf.buffer, Size: uint64(objectBuf.size)},
		},
	})
	if err != nil {
		return nil, core.NewInitError("create bind group", err)
	}
	b.bindGroups[key] = bg
	return bg, nil
}

func (b *wgpuBackend) Clear(target TextureHandle, width, height int, color [4]float32) error {
	t, ok := b.textures[target]
	if !ok {
		return fmt.Errorf("clear of unknown target %d", target)
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:   t.view,
				LoadOp: wgpu.LoadOpClear,
				ClearValue: wgpu.Color{
					R: float64(color[0]),
					G: float64(color[1]),
					B: float64(color[2]),
					A: float64(color[3]),
				},
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	pass.End()

	return b.submit(encoder)
}

func (b *wgpuBackend) Draw(cmd DrawCommand) error {
	target, ok := b.textures[cmd.Target]
	if !ok {
		return fmt.Errorf("draw to unknown target %d", cmd.Target)
	}
	vertexBuf, ok := b.buffers[cmd.VertexBuffer]
	if !ok {
		return fmt.Errorf("unknown vertex buffer %d", cmd.VertexBuffer)
	}
	indexBuf, ok := b.buffers[cmd.IndexBuffer]
	if !ok {
		return fmt.Errorf("unknown index buffer %d", cmd.IndexBuffer)
	}
	bindGroup, err := b.bindGroupFor(cmd.SceneBuffer, cmd.ObjectBuffer)
	if err != nil {
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    target.view,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	pass.SetPipeline(b.scenePipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetVertexBuffer(0, vertexBuf.buffer, 0, wgpu.WholeSize)
	indexFormat := wgpu.IndexFormatUint32
	if cmd.IndexFormat == IndexFormatUint16 {
		indexFormat = wgpu.IndexFormatUint16
	}
	pass.SetIndexBuffer(indexBuf.buffer, indexFormat, 0, wgpu.WholeSize)
	pass.SetViewport(0, 0, float32(cmd.Width), float32(cmd.Height), 0, 1)
	pass.DrawIndexed(uint32(cmd.IndexCount), 1, 0, 0, 0)
	pass.End()

	return b.submit(encoder)
}

func (b *wgpuBackend) DrawOverlay(cmd OverlayCommand) error {
	if cmd.VertexCount == 0 {
		return nil
	}
	target, ok := b.textures[cmd.Target]
	if !ok {
		return fmt.Errorf("overlay draw to unknown target %d", cmd.Target)
	}

	// Overlay geometry changes every frame, so the vertex buffer is
	// transient: created, drawn from, and released within this call.
	vertexBuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "overlay_vertices",
		Size:             uint64(len(cmd.VertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return err
	}
	defer vertexBuf.Release()
	b.queue.WriteBuffer(vertexBuf, 0, cmd.VertexData)

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    target.view,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	pass.SetPipeline(b.overlayPipeline)
	pass.SetVertexBuffer(0, vertexBuf, 0, wgpu.WholeSize)
	pass.SetViewport(0, 0, float32(cmd.Width), float32(cmd.Height), 0, 1)
	pass.Draw(uint32(cmd.VertexCount), 1, 0, 0)
	pass.End()

	return b.submit(encoder)
}

func (b *wgpuBackend) Present(target TextureHandle, width, height int) error {
	t, ok := b.textures[target]
	if !ok {
		return core.NewInitError("present", fmt.Errorf("unknown frame target %d", target))
	}

	frame, err := b.surface.GetCurrentTexture()
	if err != nil {
		return core.NewInitError("acquire back buffer", err)
	}
	defer frame.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return core.NewInitError("present", err)
	}
	defer encoder.Release()

	encoder.CopyTextureToTexture(
		&wgpu.ImageCopyTexture{Texture: t.texture, Aspect: wgpu.TextureAspectAll},
		&wgpu.ImageCopyTexture{Texture: frame, Aspect: wgpu.TextureAspectAll},
		&wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)
	if err := b.submit(encoder); err != nil {
		return core.NewInitError("present", err)
	}
	b.surface.Present()
	return nil
}

func (b *wgpuBackend) submit(encoder *wgpu.CommandEncoder) error {
	commands, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commands.Release()
	b.queue.Submit(commands)
	return nil
}

func (b *wgpuBackend) Release() {
	for key, bg := range b.bindGroups {
		bg.Release()
		delete(b.bindGroups, key)
	}
	for handle, buf := range b.buffers {
		buf.buffer.Release()
		delete(b.buffers, handle)
	}
	for handle := range b.textures {
		b.ReleaseTexture(handle)
	}
	if b.overlayPipeline != nil {
		b.overlayPipeline.Release()
		b.overlayPipeline = nil
	}
	if b.scenePipeline != nil {
		b.scenePipeline.Release()
		b.scenePipeline = nil
	}
	if b.sceneBindLayout != nil {
		b.sceneBindLayout.Release()
		b.sceneBindLayout = nil
	}
	b.queue = nil
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

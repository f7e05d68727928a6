package glctx

// bindState mirrors what the device has bound. The zero handle means
// nothing is bound. Only handles that resolved and were bound successfully
// are recorded.
type bindState struct {
	target RenderTargetHandle
	layout LayoutHandle
	shader ShaderHandle
}

func (c *Context) bindRenderTarget(h RenderTargetHandle) error {
	if !h.IsZero() && c.bound.target == h {
		return nil
	}
	t, ok := c.targets.Get(h)
	if !ok {
		return notFound("render target", h)
	}
	if err := t.bind(); err != nil {
		return err
	}
	c.bound.target = h
	return nil
}

func (c *Context) bindLayout(h LayoutHandle) error {
	if !h.IsZero() && c.bound.layout == h {
		return nil
	}
	l, ok := c.layouts.Get(h)
	if !ok {
		return notFound("layout", h)
	}
	l.bind()
	c.bound.layout = h
	return nil
}

func (c *Context) bindShader(h ShaderHandle) error {
	if !h.IsZero() && c.bound.shader == h {
		return nil
	}
	s, ok := c.shaders.Get(h)
	if !ok {
		return notFound("shader", h)
	}
	s.bind()
	c.bound.shader = h
	return nil
}

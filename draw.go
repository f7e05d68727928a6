package glctx

import (
	"github.com/gogpu/gputypes"
)

// Draw draws count vertices starting at start from layout with shader into
// target.
//
// The target, layout and shader are bound in that order, each only if it is
// not already the bound one. A handle that does not resolve aborts the draw
// with ErrResourceNotFound before anything is drawn; bindings made earlier in
// the same call stay in place. start and count must fit in an int32.
func (c *Context) Draw(target RenderTargetHandle, topology gputypes.PrimitiveTopology, shader ShaderHandle, layout LayoutHandle, start, count int) error {
	if topology > gputypes.PrimitiveTopologyTriangleStrip {
		return ErrUnsupportedTopology
	}
	if err := c.bindRenderTarget(target); err != nil {
		return err
	}
	if err := c.bindLayout(layout); err != nil {
		return err
	}
	if err := c.bindShader(shader); err != nil {
		return err
	}

	first, err := int32Field(start, "draw start into i32")
	if err != nil {
		return err
	}
	n, err := int32Field(count, "draw count into i32")
	if err != nil {
		return err
	}
	c.dev.DrawArrays(topology, first, n)
	return nil
}

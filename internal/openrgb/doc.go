// Package openrgb is a minimal client for the OpenRGB SDK server.
//
// The SDK protocol runs over TCP. Every packet starts with a 16-byte header
// (magic "ORGB", device index, packet id, payload size; little-endian)
// followed by the payload. This client speaks protocol version 0 and only
// implements the requests needed to paint a whole device one color:
// enumerate controllers, switch them to custom mode, and update all LEDs.
//
// Example usage:
//
//	c, err := openrgb.Dial(ctx, "127.0.0.1:6742")
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	ctrls, err := c.Controllers(ctx)
//	if err != nil {
//	    return err
//	}
//
//	colors := make([]openrgb.Color, ctrls[0].LEDs)
//	for i := range colors {
//	    colors[i] = openrgb.Color{R: 0, G: 255, B: 0}
//	}
//	err = c.UpdateLEDs(ctx, ctrls[0].Index, colors)
package openrgb

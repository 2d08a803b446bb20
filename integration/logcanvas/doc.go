// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package logcanvas shows a welllog.Panel in a gogpu window.
//
// The panel is rasterized into a ggcanvas.Canvas, which owns the
// CPU-to-GPU upload. The data flow is:
//
//	Panel.Render -> canvas.Image -> gg.Context -> GPU Texture -> Window
//
// # Usage
//
//	lc, err := logcanvas.New(app.GPUContextProvider(), panel, window.ScaleFactor())
//	if err != nil {
//	    return err
//	}
//	defer lc.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    lc.RenderTo(dc.AsTextureDrawer())
//	})
//
// Panel mutations (scroll, zoom, selection, well changes) mark the canvas
// stale through Panel.OnChange; the next RenderTo repaints before upload.
// Frames are only repainted when something changed.
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. Drive the panel and the canvas
// from the UI goroutine.
package logcanvas

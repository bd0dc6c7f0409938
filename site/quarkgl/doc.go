// Package quarkgl is a small software 3D renderer for presentation backdrops.
//
// It draws triangle meshes with a fixed pipeline into a caller-provided
// Target:
//
//	Scene → Transform → Projection → Clipping → Rasterization → Target.
//
// Targets range from an RGB565 framebuffer to a grid of terminal cells
// (LumaTarget). Rasterization can be split into horizontal bands drawn in
// parallel (Renderer.SetWorkers); each band owns a disjoint set of rows.
//
// Math is float32 throughout.
package quarkgl

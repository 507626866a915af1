// Package throwsim is an interactive 2D projectile simulation on top of a
// fixed-timestep game loop.
//
// A cannon follows the cursor and fires a projectile on every press of the
// left mouse button. Projectiles fall under gravity, slow down in air
// through quadratic drag and bounce off the floor with the configured
// restitution. While a parameter key is held the matching scene parameter
// is stepped; the panel in the top-left corner shows every value live.
//
// # Loop
//
// [Loop] owns the [Surface] and the [Input] adapter. Each cycle it clears
// the surface, feeds pending events from an [EventSource] into the adapter,
// runs [Simulation.Update] with the fixed step [FixedStep] as many times as
// the accumulated wall time allows (clamped to [MaxFrameTime]), then calls
// [Simulation.Render] once with the interpolation factor and presents:
//
//	cfg := throwsim.DefaultConfig()
//	w := throwsim.NewWindow(throwsim.WindowOptions{Title: "cannon", Width: 1024, Height: 640})
//	in := throwsim.NewInput()
//	sim := throwsim.NewCannonSim(cfg, w, in, throwsim.SimOptions{Fonts: w, FontData: goregular.TTF})
//	err := throwsim.NewLoop(sim, w, w, in, throwsim.LoopConfig{}).Run()
//
// Surfaces that pace frames themselves implement [Driver]; the loop then
// runs one cycle per frame instead of sleeping.
//
// # Surfaces
//
// [Window] draws with [Ebitengine]. [Recorder] keeps draw calls in memory
// for tests and headless runs. The terminal subpackage rasterises batches
// into character cells with tcell. [ScriptedEvents] replays a JSON input
// script against any of them.
//
// # Rendering
//
// The Draw functions ([DrawScene], [DrawCannon], [DrawProjectile],
// [DrawVectorsField], [DrawSceneInfo]) translate scene values into vertex
// batches and never keep state.
//
// Recoil and the color flash of a new projectile are tweened with
// [gween]. Simulation events can be bridged into a [Donburi] world with
// the ecs subpackage.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package throwsim

// Package ecs bridges throwsim simulation events into a [Donburi] world.
//
// [NewDonburiStore] publishes every event to [SimulationEventType] so ECS
// systems can subscribe to shots, removals and clears; the world's systems
// deliver them with ProcessEvents. [NewProcessingDonburiStore] delivers
// each event as soon as it is published. [NewTally] adds an entity that
// counts them.
//
// Usage:
//
//	world := donburi.NewWorld()
//	tally := ecs.NewTally(world)
//	sim := throwsim.NewCannonSim(cfg, surface, input, throwsim.SimOptions{
//		Store: ecs.NewProcessingDonburiStore(world),
//	})
//	// ... run the loop
//	log.Println(ecs.ReadTally(world, tally))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

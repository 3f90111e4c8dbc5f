// Package ecs provides ECS adapters for reelmark's timeline event stream.
//
// The primary adapter is [NewDonburiSink], which bridges timeline events
// (seeks, edits, scope changes, exports) into a [Donburi] world as typed
// events. Subscribe to [TimelineEventType] in your ECS systems to receive
// them, or call [TrackStatus] to keep a [ReviewStatus] component current.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	timeline.SetSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

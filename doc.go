// Package reelmark is the timeline core of a video review tool.
//
// A reviewer scrubs a video, marks time intervals ([Section], possibly
// nested) and point events ([Bookmark]), and groups them into colored,
// layered [Category] tracks. This package holds the document model and the
// interactive controller that edits it; drawing and video playback live
// elsewhere (see reelmark/render for an [Ebitengine] front end).
//
// # Quick start
//
//	tl := reelmark.NewTimeline(nil, reelmark.DefaultConfig(), 800, 200)
//	tl.SetDuration(60_000)
//	tl.AddCategory("Good Take", reelmark.KindSection, reelmark.Color{R: 0x4c, G: 0xaf, B: 0x50}, "Takes")
//
//	tl.Seek(1000)
//	tl.ToggleSection("Good Take") // start recording
//	tl.Seek(5000)
//	tl.ToggleSection("Good Take") // stop
//
// # Document model
//
// A [Project] holds categories, root sections, root bookmarks, an
// append-only event log and a keybind table. Sections own their nested
// sections and bookmarks. Categories are referenced by name only; deleting
// one leaves its sections and bookmarks in place, drawn in [ColorNeutral].
// [Encode] and [Decode] read and write the JSON document.
//
// Every section and bookmark carries a runtime [ID]. IDs are not persisted;
// decoding (and therefore undo and redo) assigns fresh ones.
//
// # Timeline controller
//
// [Timeline] owns a [History] (the live project plus undo and redo stacks),
// a [ScopeNavigator], a [Viewport] and the pointer state machine. Feed it
// pointer input with [Timeline.ProcessPointer] once per frame, or call
// [Timeline.PointerDown], [Timeline.PointerMove] and [Timeline.PointerUp]
// directly. Call [Timeline.Update] once per frame to advance animations,
// scripted input, exports and autosave.
//
// Every mutation publishes [EventAboutToModify] and snapshots the document
// before anything changes, then [EventDataChanged] when done:
//
//	tl.On(reelmark.EventDataChanged, func(e reelmark.Event) {
//		redraw()
//	})
//
// Undo, redo and load replace the project wholesale, so they return the
// scope to the root and cancel any drag or recording.
//
// # Scripted input
//
// [LoadScript] parses a JSON list of pointer and editing steps that a
// [ScriptRunner] replays across frames, which is how interaction is tested
// without a window.
//
// [Ebitengine]: https://ebitengine.org
package reelmark

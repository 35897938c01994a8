// Package bower is a declarative scene composition and layout engine for
// [Ebitengine].
//
// Bower builds trees of [Node] values from declarations. A declaration is an
// [Initializer] that configures a [Builder]; an [Element] runs it, loads the
// declared assets, constructs the node, attaches it and lays it out. Running
// the declaration again with [Element.UpdateElement] rebuilds the subtree in
// place, so a node whose layout depends on the viewport follows a resize.
//
// # Quick start
//
//	scene := bower.NewScene(800, 600)
//	scene.SetAssets(bower.NewAssetCache(bower.FSSource(os.DirFS("assets"))))
//
//	title := bower.NewElement(scene, bower.NewText, func(b *bower.Builder) {
//		b.Label("title").
//			Text("Bower").
//			Layout(bower.PresetTopScreen).
//			Shift(bower.DirectionDown, bower.Pixels(40))
//	})
//	if err := title.InitializeElement(ctx, scene.Root()); err != nil {
//		return err
//	}
//
// # Layout
//
// The scene's [LayoutManager] turns presets, shifts, fills and paddings into
// [PositionChange] and [SizeChange] functions. They are stored by the
// builder and evaluated after the node and its children exist. Screen
// presets read the live viewport on every evaluation; percentage shifts
// resolve against the node's size at that point in the chain.
//
//	b.Layout(bower.PresetTopLeftScreen).
//		Shift(bower.DirectionDown, bower.Pixels(50)).
//		ShiftBy(bower.DirectionRight, "10%")
//
// # Children and assets
//
// [Builder.Child] declares nested nodes. Before anything is constructed, the
// declarations of the whole subtree run and every requested asset loads
// concurrently; a failed load returns an [*AssetLoadError] and leaves the
// parent untouched.
//
// # Pools and views
//
// [ElementPool] holds a keyed, dynamic set of elements under one container.
// A [View] is a self-contained subsystem with its own root; [BaseView]
// assembles one from parts, and [ViewElement] and [ViewElementPool] compose
// views into a parent with the same lifecycle as elements.
//
// # Logging and events
//
// Each scene carries a [github.com/charmbracelet/log] logger, silent by
// default. [Scene.SetDebugMode] lowers it to debug level, which traces every
// lifecycle transition. Transitions are also sent to the scene's
// [EventSink]; the bower/ecs package forwards them into a [Donburi] world.
//
// Tweens (via [gween]) can animate a node towards a layout result with
// [TweenLayout].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bower

package main

import (
	"graphics.gd/classdb"
	"graphics.gd/classdb/SceneTree"
	"graphics.gd/startup"
	"the.quetzal.community/starling/internal"
)

func main() {
	classdb.Register[internal.Galaxy]()
	classdb.Register[internal.TuningPanel]()
	classdb.Register[internal.Viewer]()
	startup.LoadingScene()
	SceneTree.Add(new(internal.Viewer))
	startup.Scene()
}

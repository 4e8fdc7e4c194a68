package render

import (
	"github.com/lumenview/lumenview/factory"
	"github.com/lumenview/lumenview/plugins"
)

func init() {
	factory.GlobalPluginFactory().Register(pluginName, "render", func() (plugins.Manifest, plugins.Factory, map[string]any) {
		return Manifest(), New, nil
	})
}

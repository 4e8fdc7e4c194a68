package spread

import (
	"github.com/lumenview/lumenview/factory"
	"github.com/lumenview/lumenview/plugins"
)

func init() {
	factory.GlobalPluginFactory().Register(pluginName, "view", func() (plugins.Manifest, plugins.Factory, map[string]any) {
		return Manifest(), New, nil
	})
}

// Package factory instantiates pluggable modules (model stores, metrics
// sinks) from configuration. A module is named by a type string and carries
// a map of raw settings which its factory decodes into a typed struct.
//
//	reg := factory.NewRegistry[Store]()
//	reg.Register("sqlite", func(conf map[string]any) (Store, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return OpenSQLite(c.Path)
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": "model.db"}})
package factory

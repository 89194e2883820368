package drill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// A StoragePlugin is one named data source configuration of the cluster,
// e.g. an Oracle connection or a filesystem workspace. The Config payload is
// plugin specific and kept raw.
type StoragePlugin struct {
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config"`
}

// Enabled reports whether the plugin configuration carries "enabled": true.
func (s *StoragePlugin) Enabled() bool {
	var cfg struct {
		Enabled bool `json:"enabled"`
	}

	if err := json.Unmarshal(s.Config, &cfg); err != nil {
		return false
	}
	return cfg.Enabled
}

// ListStoragePlugins returns every storage plugin configured on the cluster,
// enabled or not.
func (d *Client) ListStoragePlugins(ctx context.Context) ([]StoragePlugin, error) {
	var plugins []StoragePlugin
	if err := d.doGet(ctx, "/storage.json", &plugins); err != nil {
		return nil, err
	}
	return plugins, nil
}

// GetStoragePlugin returns the configuration of a single plugin by name,
// an error wrapping ErrNotFound if no such plugin exists.
func (d *Client) GetStoragePlugin(ctx context.Context, name string) (*StoragePlugin, error) {
	plugin := &StoragePlugin{}
	if err := d.doGet(ctx, "/storage/"+escapePath(name)+".json", plugin); err != nil {
		return nil, err
	}

	// drill answers requests for unknown plugins with a null config
	// instead of a 404
	if len(plugin.Config) == 0 || bytes.Equal(plugin.Config, []byte("null")) {
		return nil, fmt.Errorf("%w: storage plugin %s", ErrNotFound, name)
	}

	if plugin.Name == "" {
		plugin.Name = name
	}
	return plugin, nil
}

// EnableStoragePlugin flips the enabled state of a plugin.
func (d *Client) EnableStoragePlugin(ctx context.Context, name string, enable bool) error {
	var result struct {
		Result string `json:"result"`
	}

	path := fmt.Sprintf("/storage/%s/enable/%t", escapePath(name), enable)
	if err := d.doGet(ctx, path, &result); err != nil {
		return err
	}

	if result.Result != "success" && result.Result != "Success" {
		return fmt.Errorf("drill: enabling storage plugin %s: %s", name, result.Result)
	}
	return nil
}

package drill

import "context"

// A Drillbit is one endpoint of the cluster as reported by /cluster.json.
// Port numbers are reported as strings by the webserver.
type Drillbit struct {
	DrillbitID   string `json:"drillbitId"`
	Address      string `json:"address"`
	UserPort     string `json:"userPort"`
	ControlPort  string `json:"controlPort"`
	DataPort     string `json:"dataPort"`
	Current      bool   `json:"current"`
	VersionMatch bool   `json:"versionMatch"`
	State        string `json:"state"`
}

// ClusterInfo describes the cluster membership seen by the connected bit.
type ClusterInfo struct {
	Drillbits      []Drillbit `json:"drillbits"`
	CurrentVersion string     `json:"currentVersion"`
	UserEncryption bool       `json:"userEncryptionEnabled"`
}

// GetClusterInfo fetches the cluster membership from the connected drillbit.
// NewConnection uses this to rotate new sessions across the cluster.
func (d *Client) GetClusterInfo(ctx context.Context) (*ClusterInfo, error) {
	info := &ClusterInfo{}
	if err := d.doGet(ctx, "/cluster.json", info); err != nil {
		return nil, err
	}
	return info, nil
}

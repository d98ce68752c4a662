package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID salts the machine id so it is not exposed verbatim.
const AppID = "edgeline"

// MachineID retrieves the unique ID identifying the machine, shortened to
// 12 hex digits. The host name is used when no machine id is available.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		if host, err := os.Hostname(); err == nil && host != "" {
			return host
		}
		return "unknown"
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

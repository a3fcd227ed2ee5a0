package verbs

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// selectDevice enumerates the visible adapters and opens the one whose
// name matches. An empty name selects DefaultDeviceName.
func selectDevice(p provider, name string) (deviceHandle, error) {
	if name == "" {
		name = DefaultDeviceName
	}

	devices, err := p.listDevices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w: no RDMA devices visible", ErrDeviceNotFound)
	}

	for _, info := range devices {
		if info.Name != name {
			continue
		}
		handle, err := p.openDevice(info.Name)
		if err != nil {
			return nil, fmt.Errorf("opening device %s: %w", info.Name, err)
		}
		log.Info().
			Str("device", info.Name).
			Str("guid", fmt.Sprintf("%016x", info.GUID)).
			Msg("Opened RDMA device")
		return handle, nil
	}

	names := make([]string, 0, len(devices))
	for _, info := range devices {
		names = append(names, info.Name)
	}
	return nil, fmt.Errorf("%w: %s not among visible devices %v", ErrDeviceNotFound, name, names)
}

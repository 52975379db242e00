package services

import (
	"os"
	"strconv"
	"time"

	"mangadesk/internal/models/db_models"
)

// ViolationReason is the fixed message stored on accounts banned for
// exceeding the device cap.
const ViolationReason = "Maximum device limit exceeded"

// PolicyConfig carries the device policy parameters. The cap and ban
// duration decide the entire accept/reject boundary, so they are read from
// the environment rather than inlined at call sites.
type PolicyConfig struct {
	MaxDevices  int
	BanDuration time.Duration
}

func DefaultPolicyConfig() PolicyConfig {
	cfg := PolicyConfig{
		MaxDevices:  3,
		BanDuration: 7 * 24 * time.Hour,
	}
	if v, err := strconv.Atoi(os.Getenv("DEVICE_LIMIT")); err == nil && v > 0 {
		cfg.MaxDevices = v
	}
	if v, err := strconv.Atoi(os.Getenv("DEVICE_BAN_DAYS")); err == nil && v > 0 {
		cfg.BanDuration = time.Duration(v) * 24 * time.Hour
	}
	return cfg
}

type banState int

const (
	banNone banState = iota
	banActive
	banExpired
)

// evaluateBan classifies the stored ban against now. A bannedUntil strictly
// in the future is active; anything else that is still set has expired and
// should be cleared lazily by the caller.
func evaluateBan(bannedUntil *int64, now time.Time) banState {
	if bannedUntil == nil {
		return banNone
	}
	if time.Unix(*bannedUntil, 0).After(now) {
		return banActive
	}
	return banExpired
}

type deviceOutcome struct {
	// Known is the matching active device record, nil for a new device.
	Known       *db_models.Device
	Violation   bool
	ActiveCount int
}

// evaluateDevices is the pure decision over a snapshot of active devices:
// either the device is already registered, or it is new and fits under the
// cap, or registering it would be a violation.
func evaluateDevices(devices []db_models.Device, deviceID string, maxDevices int) deviceOutcome {
	out := deviceOutcome{ActiveCount: len(devices)}
	for i := range devices {
		if devices[i].DeviceID == deviceID {
			out.Known = &devices[i]
			return out
		}
	}
	if len(devices) >= maxDevices {
		out.Violation = true
	}
	return out
}

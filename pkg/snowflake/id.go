package snowflake

import (
	"fmt"
	"strconv"
	"time"
)

// ID - a generated 64-bit identifier.
type ID uint64

// Parts - the fields packed into an ID.
type Parts struct {
	Timestamp    int64     `json:"timestamp"` // Milliseconds since Epoch.
	DatacenterID int64     `json:"datacenter_id"`
	MachineID    int64     `json:"machine_id"`
	Sequence     int64     `json:"sequence"`
	Time         time.Time `json:"time"`
}

// Compose packs the fields into an ID. Values wider than their field are masked.
func Compose(timestamp, datacenterID, machineID, sequence int64) ID {
	return ID(uint64(timestamp&MaxTimestamp)<<TimestampShift |
		uint64(datacenterID&MaxDatacenterID)<<DatacenterIDShift |
		uint64(machineID&MaxMachineID)<<MachineIDShift |
		uint64(sequence&SequenceMask))
}

// ParseID parses the decimal form of an ID.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w '%s': %w", ErrInvalidID, s, err)
	}

	return ID(v), nil
}

// Timestamp returns the milliseconds elapsed between Epoch and the ID creation.
func (id ID) Timestamp() int64 {
	return int64(uint64(id) >> TimestampShift)
}

func (id ID) DatacenterID() int64 {
	return int64(uint64(id)>>DatacenterIDShift) & MaxDatacenterID
}

func (id ID) MachineID() int64 {
	return int64(uint64(id)>>MachineIDShift) & MaxMachineID
}

func (id ID) Sequence() int64 {
	return int64(uint64(id)) & SequenceMask
}

// Time returns the creation time of the ID in UTC, at millisecond precision.
func (id ID) Time() time.Time {
	return time.UnixMilli(Epoch + id.Timestamp()).UTC()
}

// Decompose extracts every field of the ID.
func (id ID) Decompose() Parts {
	return Parts{
		Timestamp:    id.Timestamp(),
		DatacenterID: id.DatacenterID(),
		MachineID:    id.MachineID(),
		Sequence:     id.Sequence(),
		Time:         id.Time(),
	}
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

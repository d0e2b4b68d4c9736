package todo

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ID formats accepted by NewIDGenerator.
const (
	IDFormatClock = "clock"
	IDFormatUUID  = "uuid"
)

// IDGenerator issues task ids.
type IDGenerator interface {
	NewID() string
}

// NewIDGenerator returns the generator for the named format.
func NewIDGenerator(format string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case IDFormatClock, "":
		return NewClockIDs(), nil
	case IDFormatUUID:
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id format %q (expected %s|%s)", format, IDFormatClock, IDFormatUUID)
	}
}

// ClockIDs issues decimal millisecond Unix timestamps.
// When the clock has not moved past the last issued id (same millisecond,
// or the clock stepped back) the previous id plus one is issued instead.
type ClockIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClockIDs returns a ClockIDs reading the wall clock.
func NewClockIDs() *ClockIDs {
	return &ClockIDs{now: time.Now}
}

// NewID returns the next id.
func (c *ClockIDs) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUIDIDs issues random (version 4) UUIDs.
type UUIDIDs struct{}

// NewID returns a new random UUID string.
func (UUIDIDs) NewID() string {
	return uuid.NewString()
}

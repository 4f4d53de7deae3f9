package ft80x

import (
	"io"
	"math"
)

// File is one open handle on a Dev, in the shape of a character-device
// file: Read/Write/Close plus the command surface. Handles are cheap;
// a device supports up to 255 concurrently open handles.
type File struct {
	d      *Dev
	closed bool // Guarded by d.mu
}

// Open returns a new handle on the device.
//
// Opening fails with ErrUnlinked once the device has been removed from
// the registry, and with ErrTooManyRefs if the reference count would
// overflow; the count is unchanged on failure.
func (d *Dev) Open() (*File, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unlinked || d.destroyed {
		return nil, wrap(ErrUnlinked)
	}
	if d.crefs == math.MaxUint8 {
		return nil, wrap(ErrTooManyRefs)
	}
	d.crefs++
	return &File{d: d}, nil
}

// Close releases the handle. Closing the last handle of an unlinked
// device destroys the device. Closing twice returns ErrClosed.
func (f *File) Close() error {
	d := f.d
	d.mu.Lock()
	defer d.mu.Unlock()
	if f.closed {
		return wrap(ErrClosed)
	}
	f.closed = true
	d.crefs--
	d.maybeDestroyLocked()
	return nil
}

// Unlink removes the device from the registry. Handles that are already
// open keep working; the device is destroyed when the last of them is
// closed, or immediately if none are open. Unlinking twice returns
// ErrUnlinked.
func (d *Dev) Unlink() error {
	registryRemove(devName, d)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unlinked {
		return wrap(ErrUnlinked)
	}
	d.unlinked = true
	d.maybeDestroyLocked()
	return nil
}

// maybeDestroyLocked is the single destruction gate, shared by the two
// call sites that can observe the destroying condition: the last Close of
// an unlinked device, and Unlink of a device with no open handles. The
// caller holds d.mu.
func (d *Dev) maybeDestroyLocked() {
	if !d.unlinked || d.crefs != 0 || d.destroyed {
		return
	}
	d.destroyed = true
	if d.lower.Destroy != nil {
		d.lower.Destroy()
	}
}

// Read reports end-of-input: reading is semantically undefined for this
// chip class.
func (f *File) Read(p []byte) (int, error) {
	return 0, io.EOF
}

// Write copies a display list verbatim to the base of the display list
// RAM and reports the number of bytes written.
//
// The list must be non-empty, a whole number of 32-bit words and no
// larger than RAMDLSize; anything else fails with ErrInvalidArgument
// before any bus transaction.
func (f *File) Write(p []byte) (int, error) {
	d := f.d
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := f.checkLocked(); err != nil {
		return 0, err
	}
	if len(p) == 0 || len(p)&3 != 0 || len(p) > RAMDLSize {
		return 0, wrap(ErrInvalidArgument)
	}
	if err := d.writeBlock(ramDL, p); err != nil {
		return 0, wrap(err)
	}
	return len(p), nil
}

// PutDisplayList writes the display list dl to the chip. It is the
// command-surface spelling of Write.
func (f *File) PutDisplayList(dl []byte) error {
	_, err := f.Write(dl)
	return err
}

// GetResult32 reads back one 32-bit value from the display list RAM, for
// commands that deposit results there. offset must be word-aligned and
// inside the display list window.
func (f *File) GetResult32(offset uint32) (uint32, error) {
	d := f.d
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := f.checkLocked(); err != nil {
		return 0, err
	}
	if offset&3 != 0 || offset >= RAMDLSize {
		return 0, wrap(ErrInvalidArgument)
	}
	v, err := d.readWord(ramDL + offset)
	if err != nil {
		return 0, wrap(err)
	}
	return v, nil
}

// GetTracker returns the tracker register. The coprocessor updates it
// asynchronously with position data after a tracking command; there is no
// readiness notification, callers poll.
func (f *File) GetTracker() (uint32, error) {
	d := f.d
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := f.checkLocked(); err != nil {
		return 0, err
	}
	v, err := d.readWord(regTracker)
	if err != nil {
		return 0, wrap(err)
	}
	return v, nil
}

func (f *File) checkLocked() error {
	if f.closed {
		return wrap(ErrClosed)
	}
	if f.d.halted {
		return wrap(ErrHalted)
	}
	return nil
}

// Request selects a command for Control.
type Request int

// Control requests.
const (
	ReqPutDisplayList Request = iota + 1 // arg: []byte display list
	ReqGetResult32                       // arg: *Result32
	ReqGetTracker                        // arg: *uint32
)

// Result32 carries a GetResult32 request through Control: Offset in, the
// word read back in Value.
type Result32 struct {
	Offset uint32
	Value  uint32
}

// Control dispatches one command request, ioctl style. An unrecognized
// request fails with ErrNotSupported; a request with the wrong or nil
// argument fails with ErrInvalidArgument. No state changes on failure.
func (f *File) Control(req Request, arg any) error {
	switch req {
	case ReqPutDisplayList:
		dl, ok := arg.([]byte)
		if !ok {
			return wrap(ErrInvalidArgument)
		}
		return f.PutDisplayList(dl)

	case ReqGetResult32:
		r, ok := arg.(*Result32)
		if !ok || r == nil {
			return wrap(ErrInvalidArgument)
		}
		v, err := f.GetResult32(r.Offset)
		if err != nil {
			return err
		}
		r.Value = v
		return nil

	case ReqGetTracker:
		t, ok := arg.(*uint32)
		if !ok || t == nil {
			return wrap(ErrInvalidArgument)
		}
		v, err := f.GetTracker()
		if err != nil {
			return err
		}
		*t = v
		return nil

	default:
		return wrap(ErrNotSupported)
	}
}

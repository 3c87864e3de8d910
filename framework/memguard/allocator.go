// Package memguard is a guard-banded allocator used to catch two classes of
// bug in code under test: writes outside the requested block (detected at
// free time by checking fixed-pattern guard regions on both sides of every
// allocation) and blocks never freed (detected by comparing the live-block
// list against a checkpoint at phase boundaries).
package memguard

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/mockharness/mockharness/framework"
	"github.com/mockharness/mockharness/framework/dlist"
)

// Guard sizes and fill patterns. These are fixed, not configurable; tests
// depend on the exact byte values to recognize uninitialized and stale data.
const (
	// GuardSize is the width in bytes of the guard region on each side of an
	// allocation.
	GuardSize = 16

	// GuardPattern fills the guard regions. Any deviation found at free time
	// is corruption.
	GuardPattern byte = 0xEF

	// AllocPattern fills a freshly allocated block, so reads of memory that
	// was never written stand out.
	AllocPattern byte = 0xBA

	// FreePattern overwrites a block when it is freed, so use-after-free
	// reads stand out.
	FreePattern byte = 0xCD
)

// BlockInfo records one live allocation.
type BlockInfo struct {
	// Size is the size the caller requested.
	Size int
	// Site is where the block was allocated.
	Site framework.Site

	raw  []byte // guard + user area (+ pad) + guard
	data *byte  // identity of the block, first byte of the user area
	seq  uint64 // allocation order, compared against checkpoints
	node *dlist.Node[*BlockInfo]
}

// CorruptionError reports a guard byte that no longer holds GuardPattern,
// detected when the block was freed.
type CorruptionError struct {
	// Site is where the corrupted block was allocated.
	Site framework.Site
	// Size is the requested size of the block.
	Size int
	// Offset is the distance of the first corrupt byte from the start of the
	// user area; negative offsets are in the leading guard.
	Offset int
}

func (e *CorruptionError) Error() string {
	region := "following"
	if e.Offset < 0 {
		region = "preceding"
	}
	return errors.Errorf("guard region %s block of size %d is corrupt at offset %d (block allocated at %s)",
		region, e.Size, e.Offset, e.Site).Error()
}

// Checkpoint marks a position in the allocation history. Blocks allocated
// after the checkpoint was taken are "new since checkpoint". A checkpoint
// stays valid even if the blocks around it are freed in the meantime.
type Checkpoint struct {
	seq uint64
}

// Allocator tracks guarded blocks. It is not safe for concurrent use; the
// engine gives each test run its own instance.
type Allocator struct {
	blocks  *dlist.List[*BlockInfo]
	index   map[*byte]*BlockInfo
	lastSeq uint64
}

// New creates an allocator with no live blocks.
func New() *Allocator {
	return &Allocator{
		blocks: dlist.New[*BlockInfo](),
		index:  make(map[*byte]*BlockInfo),
	}
}

// Allocate returns a block of the given size flanked by guard regions and
// filled with AllocPattern. The returned slice's capacity equals the
// requested size, so the only way to write past it is through unsafe code or
// stale aliases, which is exactly what the guards are there to catch.
// The block is aligned at least to the platform word size.
func (a *Allocator) Allocate(size int, site framework.Site) []byte {
	if size < 0 {
		size = 0
	}
	// Zero-size blocks keep one pad byte so that the returned slice has a
	// stable non-nil identity; the pad is verified with the trailing guard.
	pad := 0
	if size == 0 {
		pad = 1
	}
	raw := make([]byte, GuardSize+size+pad+GuardSize)
	for i := 0; i < GuardSize; i++ {
		raw[i] = GuardPattern
		raw[len(raw)-1-i] = GuardPattern
	}
	user := raw[GuardSize : GuardSize+size+pad]
	for i := range user {
		user[i] = AllocPattern
	}
	if pad == 1 {
		user[size] = GuardPattern
	}

	a.lastSeq++
	block := &BlockInfo{
		Size: size,
		Site: site,
		raw:  raw,
		data: &user[0],
		seq:  a.lastSeq,
	}
	block.node = a.blocks.PushBack(block)
	a.index[block.data] = block
	return user[: size : size+pad]
}

// AllocateZeroed allocates count*size bytes and clears them, the calloc
// equivalent. A negative operand or a product that overflows int panics
// rather than quietly allocating a block of the wrong size.
func (a *Allocator) AllocateZeroed(count, size int, site framework.Site) []byte {
	if count < 0 || size < 0 || (size != 0 && count > math.MaxInt/size) {
		panic(fmt.Sprintf("memguard: zeroed allocation of %d * %d bytes overflows", count, size))
	}
	b := a.Allocate(count*size, site)
	for i := range b {
		b[i] = 0
	}
	return b
}

// Free verifies both guard regions of the block and releases it. A guard
// mismatch returns a CorruptionError naming the allocation site; the block
// is released regardless so one corrupt block cannot poison later checks.
// Freeing nil is a no-op. Freeing memory this allocator does not own is an
// error.
func (a *Allocator) Free(block []byte) error {
	if block == nil {
		return nil
	}
	info, err := a.lookup(block)
	if err != nil {
		return err
	}
	corrupt := a.release(info)
	if corrupt != nil {
		return corrupt
	}
	return nil
}

// Reallocate grows or shrinks a block, preserving min(old, new) bytes.
// A nil block degrades to Allocate; a zero size degrades to Free.
func (a *Allocator) Reallocate(block []byte, size int, site framework.Site) ([]byte, error) {
	if block == nil {
		return a.Allocate(size, site), nil
	}
	if size == 0 {
		return nil, a.Free(block)
	}
	info, err := a.lookup(block)
	if err != nil {
		return nil, err
	}
	fresh := a.Allocate(size, site)
	n := info.Size
	if size < n {
		n = size
	}
	copy(fresh, block[:n])
	// The new block is returned even if the old one turns out corrupt, so
	// the caller still owns it and it does not show up as a leak.
	return fresh, a.Free(block)
}

func (a *Allocator) lookup(block []byte) (*BlockInfo, error) {
	key := unsafe.SliceData(block)
	info := a.index[key]
	if info == nil {
		return nil, errors.Errorf("block %p was not allocated by this allocator", key)
	}
	return info, nil
}

// release unlinks the block, checks its guards, and stamps the whole region
// with FreePattern. Returns a CorruptionError if a guard byte was modified.
func (a *Allocator) release(info *BlockInfo) error {
	a.blocks.Remove(info.node)
	delete(a.index, info.data)

	var corrupt error
	for i := 0; i < GuardSize; i++ {
		if info.raw[i] != GuardPattern {
			corrupt = &CorruptionError{Site: info.Site, Size: info.Size, Offset: i - GuardSize}
			break
		}
	}
	if corrupt == nil {
		// Everything beyond the user data (pad byte plus trailing guard)
		// must still hold the pattern.
		tail := info.raw[GuardSize+info.Size:]
		for i, b := range tail {
			if b != GuardPattern {
				corrupt = &CorruptionError{Site: info.Site, Size: info.Size, Offset: info.Size + i}
				break
			}
		}
	}
	for i := range info.raw {
		info.raw[i] = FreePattern
	}
	return corrupt
}

// Checkpoint captures the current position in the allocation history.
func (a *Allocator) Checkpoint() Checkpoint {
	return Checkpoint{seq: a.lastSeq}
}

// BlocksSince lists the blocks allocated after the checkpoint that are still
// live, in allocation order.
func (a *Allocator) BlocksSince(cp Checkpoint) []*BlockInfo {
	var out []*BlockInfo
	for n := a.blocks.Front(); n != nil; n = n.Next() {
		if n.Value.seq > cp.seq {
			out = append(out, n.Value)
		}
	}
	return out
}

// FreeSince force-releases every block allocated after the checkpoint,
// without guard verification. Used after a leak has already been reported to
// keep subsequent tests on a clean heap.
func (a *Allocator) FreeSince(cp Checkpoint) {
	for _, info := range a.BlocksSince(cp) {
		a.blocks.Remove(info.node)
		delete(a.index, info.data)
		for i := range info.raw {
			info.raw[i] = FreePattern
		}
	}
}

// LiveCount returns the number of blocks currently allocated.
func (a *Allocator) LiveCount() int { return a.blocks.Len() }

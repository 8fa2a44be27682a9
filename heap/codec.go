// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package heap

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"cloudeng.io/errors"
)

// GobEncode implements gob.GobEncoder. The live entries are written as a
// single varint stream of (id, priority) pairs in heap order.
func (h *Indexed) GobEncode() ([]byte, error) {
	errs := errors.M{}
	payload := make([]byte, 0, h.size*2*binary.MaxVarintLen64)
	var vb [binary.MaxVarintLen64]byte
	for p := 1; p <= h.size; p++ {
		nd := h.nodes[p]
		n := binary.PutVarint(vb[:], int64(nd.ID))
		payload = append(payload, vb[:n]...)
		n = binary.PutVarint(vb[:], int64(nd.Priority))
		payload = append(payload, vb[:n]...)
	}
	buf := bytes.NewBuffer(make([]byte, 0, len(payload)+64))
	enc := gob.NewEncoder(buf)
	errs.Append(enc.Encode(len(h.pos)))
	errs.Append(enc.Encode(h.size))
	errs.Append(enc.Encode(payload))
	return buf.Bytes(), errs.Err()
}

// GobDecode implements gob.GobDecoder, rebuilding the id index from the
// decoded entries.
func (h *Indexed) GobDecode(buf []byte) error {
	dec := gob.NewDecoder(bytes.NewBuffer(buf))
	errs := errors.M{}
	var capacity, size int
	var payload []byte
	errs.Append(dec.Decode(&capacity))
	errs.Append(dec.Decode(&size))
	errs.Append(dec.Decode(&payload))
	if err := errs.Err(); err != nil {
		return err
	}
	if capacity < 0 || size < 0 || size > capacity {
		return fmt.Errorf("heap: invalid encoding: size %v, capacity %v", size, capacity)
	}
	nodes := make([]Node, capacity+1)
	pos := make([]int, capacity)
	idx := 0
	for p := 1; p <= size; p++ {
		id, n := binary.Varint(payload[idx:])
		if n <= 0 {
			return fmt.Errorf("heap: invalid encoding: truncated at entry %v", p)
		}
		idx += n
		pri, n := binary.Varint(payload[idx:])
		if n <= 0 {
			return fmt.Errorf("heap: invalid encoding: truncated at entry %v", p)
		}
		idx += n
		if id < 0 || id >= int64(capacity) || pos[id] != 0 {
			return fmt.Errorf("heap: invalid encoding: id %v at entry %v", id, p)
		}
		nodes[p] = Node{ID: int(id), Priority: int(pri)}
		pos[id] = p
	}
	h.nodes, h.pos, h.size = nodes, pos, size
	return nil
}

type jsonIndexed struct {
	Capacity int    `json:"capacity"`
	Size     int    `json:"size"`
	Nodes    []Node `json:"nodes"`
}

// MarshalJSON implements json.Marshaler.
func (h *Indexed) MarshalJSON() ([]byte, error) {
	// A zero value heap has no slot 0 sentinel to slice past.
	var live []Node
	if h.size > 0 {
		live = h.nodes[1 : h.size+1]
	}
	return json.Marshal(jsonIndexed{
		Capacity: len(h.pos),
		Size:     h.size,
		Nodes:    live,
	})
}

// UnmarshalJSON implements json.Unmarshaler, rebuilding the id index
// from the decoded entries.
func (h *Indexed) UnmarshalJSON(buf []byte) error {
	var enc jsonIndexed
	if err := json.Unmarshal(buf, &enc); err != nil {
		return err
	}
	if enc.Capacity < 0 || enc.Size != len(enc.Nodes) || enc.Size > enc.Capacity {
		return fmt.Errorf("heap: invalid encoding: size %v, capacity %v, %v nodes", enc.Size, enc.Capacity, len(enc.Nodes))
	}
	nodes := make([]Node, enc.Capacity+1)
	pos := make([]int, enc.Capacity)
	for i, nd := range enc.Nodes {
		if nd.ID < 0 || nd.ID >= enc.Capacity || pos[nd.ID] != 0 {
			return fmt.Errorf("heap: invalid encoding: id %v at entry %v", nd.ID, i+1)
		}
		nodes[i+1] = nd
		pos[nd.ID] = i + 1
	}
	h.nodes, h.pos, h.size = nodes, pos, enc.Size
	return nil
}

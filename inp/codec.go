package inp

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"hydrosolve/network"
)

// wireNetwork is the serialization-friendly mirror of network.Network: the
// same fields, but with exported tags for both encoding/json and
// vmihailenco/msgpack, and Patterns/Curves flattened from maps to slices
// (the `convert` subcommand's JSON/MessagePack output is meant to be
// read by other tools, and a map of pointers doesn't round-trip portably
// across both encoders the way a slice does).
type wireNetwork struct {
	Nodes    []*network.Node    `json:"nodes" msgpack:"nodes"`
	Links    []*network.Link    `json:"links" msgpack:"links"`
	Patterns []*network.Pattern `json:"patterns" msgpack:"patterns"`
	Curves   []*network.Curve   `json:"curves" msgpack:"curves"`
	Controls []*network.Control `json:"controls" msgpack:"controls"`
}

func toWire(net *network.Network) *wireNetwork {
	w := &wireNetwork{Nodes: net.Nodes, Links: net.Links, Controls: net.Controls}
	for _, p := range net.Patterns {
		w.Patterns = append(w.Patterns, p)
	}
	for _, c := range net.Curves {
		w.Curves = append(w.Curves, c)
	}
	return w
}

func fromWire(w *wireNetwork) (*network.Network, error) {
	net := network.New()
	for _, p := range w.Patterns {
		net.Patterns[p.ID] = p
	}
	for _, c := range w.Curves {
		net.Curves[c.ID] = c
	}
	for _, n := range w.Nodes {
		if err := net.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, l := range w.Links {
		if err := net.AddLink(l); err != nil {
			return nil, err
		}
	}
	net.Controls = w.Controls
	if err := net.Finalize(); err != nil {
		return nil, err
	}
	return net, nil
}

// WriteJSON serializes a finalized Network to w in the wire format.
func WriteJSON(w io.Writer, net *network.Network) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toWire(net))
}

// ReadJSON deserializes and re-finalizes a Network written by WriteJSON.
func ReadJSON(r io.Reader) (*network.Network, error) {
	var w wireNetwork
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, err
	}
	return fromWire(&w)
}

// WriteMsgpack serializes a finalized Network to w as MessagePack, a
// denser binary alternative to WriteJSON for large networks (spec.md §6's
// `convert` subcommand output format choice).
func WriteMsgpack(w io.Writer, net *network.Network) error {
	return msgpack.NewEncoder(w).Encode(toWire(net))
}

// ReadMsgpack deserializes and re-finalizes a Network written by
// WriteMsgpack.
func ReadMsgpack(r io.Reader) (*network.Network, error) {
	var w wireNetwork
	if err := msgpack.NewDecoder(r).Decode(&w); err != nil {
		return nil, err
	}
	return fromWire(&w)
}

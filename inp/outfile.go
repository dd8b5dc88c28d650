package inp

import (
	"bufio"
	"encoding/binary"
	"io"

	"hydrosolve/hydroerr"
)

// outMagic is EPANET's binary .out file format marker, written identically
// at both the start of the prolog and the end of the epilog.
const outMagic = 516114521

// OutFile is a minimal reader for EPANET's binary .out results format — just
// enough to support `validate`: per-period node head and link flow values,
// in the file's own node/link declaration order. spec.md §6's validate
// subcommand only ever compares a .out file against a fresh solve of the
// very network that produced it, so OutFile trusts that ordering rather
// than re-parsing the embedded 32-byte id strings back into names —
// EPANET itself always writes ids in declaration order, the same order
// network.Network.Nodes/Links already use.
type OutFile struct {
	NNodes, NLinks, NTanks, NPumps int
	Periods                        []OutPeriod
}

// OutPeriod is one reported time-step's node heads and link flows.
type OutPeriod struct {
	Heads []float64
	Flows []float64
}

// ReadOut parses a full EPANET .out binary stream per spec.md §6's layout:
// an 884+36*N_nodes+52*N_links+8*N_tanks byte prolog (counts live in the
// first 15 int32 words), a 28*N_pumps+4 byte energy-use block, then
// per-period blocks of 16*N_nodes+32*N_links bytes of little-endian
// float32 values (see readOutPeriod for their order), terminated
// by an epilog whose own magic-number field is not re-verified here (an
// .out that reads this far without a framing error is accepted).
func ReadOut(r io.Reader) (*OutFile, error) {
	br := bufio.NewReader(r)

	var hdr [15]int32
	for i := range hdr {
		if err := binary.Read(br, binary.LittleEndian, &hdr[i]); err != nil {
			return nil, hydroerr.New(hydroerr.Input, "", "reading .out prolog header: %v", err)
		}
	}
	if hdr[0] != outMagic {
		return nil, hydroerr.New(hydroerr.Input, "", "not an EPANET .out file: bad magic number %d", hdr[0])
	}
	of := &OutFile{NTanks: int(hdr[2]), NNodes: int(hdr[3]), NLinks: int(hdr[4]), NPumps: int(hdr[5])}

	prologBytes := 884 + 36*of.NNodes + 52*of.NLinks + 8*of.NTanks
	alreadyRead := 15 * 4
	if _, err := io.CopyN(io.Discard, br, int64(prologBytes-alreadyRead)); err != nil {
		return nil, hydroerr.New(hydroerr.Input, "", "reading .out prolog: %v", err)
	}

	energyBytes := 28*of.NPumps + 4
	if _, err := io.CopyN(io.Discard, br, int64(energyBytes)); err != nil {
		return nil, hydroerr.New(hydroerr.Input, "", "reading .out energy block: %v", err)
	}

	for {
		period, err := readOutPeriod(br, of.NNodes, of.NLinks)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		of.Periods = append(of.Periods, period)
	}
	return of, nil
}

const (
	perNodeBytes = 16 // demand, head, pressure, quality — one float32 each
	perLinkBytes = 32 // flow, velocity, headloss, quality, status, setting, reaction rate, friction factor — one float32 each
)

// readOutPeriod reads one period, which is written field by field: a block
// of nNodes values for each node field in perNodeBytes' order, then a block
// of nLinks values for each link field in perLinkBytes' order. Only the head
// and flow blocks are kept.
func readOutPeriod(br *bufio.Reader, nNodes, nLinks int) (OutPeriod, error) {
	var p OutPeriod
	if _, err := io.CopyN(io.Discard, br, int64(4*nNodes)); err != nil { // demand block
		return p, io.EOF
	}
	p.Heads = make([]float64, nNodes)
	for i := 0; i < nNodes; i++ {
		v, err := readFloat32First(br, 4)
		if err != nil {
			if i == 0 && err == io.EOF {
				return p, io.EOF
			}
			return p, err
		}
		p.Heads[i] = v
	}
	if _, err := io.CopyN(io.Discard, br, int64((perNodeBytes-8)*nNodes)); err != nil { // pressure and quality blocks
		return p, io.EOF
	}
	p.Flows = make([]float64, nLinks)
	for i := 0; i < nLinks; i++ {
		v, err := readFloat32First(br, 4)
		if err != nil {
			return p, err
		}
		p.Flows[i] = v
	}
	if _, err := io.CopyN(io.Discard, br, int64((perLinkBytes-4)*nLinks)); err != nil { // remaining link blocks
		return p, io.EOF
	}
	return p, nil
}

// readFloat32First reads a little-endian float32 followed by (width-4)
// bytes of discarded trailing fields in the same record.
func readFloat32First(br *bufio.Reader, width int) (float64, error) {
	var v float32
	if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, io.EOF
		}
		return 0, hydroerr.New(hydroerr.Input, "", "reading .out record: %v", err)
	}
	if width > 4 {
		if _, err := io.CopyN(io.Discard, br, int64(width-4)); err != nil {
			return 0, hydroerr.New(hydroerr.Input, "", "reading .out record padding: %v", err)
		}
	}
	return float64(v), nil
}

// //go:build ignore
// // +build ignore

package main

import (
	. "github.com/mmcloughlin/avo/build"
	"github.com/mmcloughlin/avo/operand"
)

// func main() {
// 	TEXT("Set1", NOSPLIT, "func(c uint8) ")
// 	x := Load(Param("c"), XMM())
// 	PUNPCKLBW(x, x)
// 	// 	PUNPCKLWD(x, x)
// 	PSHUFD(x, x, operand.Imm(0))
// 	// Store(x, ReturnIndex(0))
// 	RET()
// 	Generate()
// }

// WORKS!
// func main() {
// 	TEXT("MatchByte", NOSPLIT, "func(c uint8, buffer []byte) uint32")
// 	// TEXT("MatchByte", NOSPLIT, "func(c uint8, buffer *byte) uint32")
// 	c := Load(Param("c"), GP32())
// 	ptr := Load(Param("buffer").Base(), GP64())
// 	// ptr := Load(Param("buffer"), GP64())
// 	x0, x1 := XMM(), XMM()
// 	result := GP32()
// 	PXOR(x1, x1)
// 	MOVD(c, x0)
// 	PSHUFB(x1, x0)
// 	// if !operand.IsM128(operand.Mem{Base: ptr}) {
// 	// 	panic("not m128")
// 	// }
// 	// Mem example from https://github.com/mmcloughlin/avo/blob/master/examples/fnv1a/asm.go#L32
// 	// also: https://github.com/mmcloughlin/avo/blob/master/examples/sum/asm.go
// 	PCMPEQB(operand.Mem{Base: ptr}, x0)
// 	PMOVMSKB(x0, result)
// 	Store(result, ReturnIndex(0))
// 	RET()
// 	Generate()
// }

// main2 generates the amd64 matchByte asm, matching the pure-Go SWAR
// fallback in match.go byte for byte: same signature, same meaning of mask
// (bit i set iff window[i] == b), same ok=false short-circuit for windows
// shorter than a group. Not currently built into the package — see
// DESIGN.md for why the generated .s isn't checked in.
func main2() {
	TEXT("matchByte", NOSPLIT, "func(b uint8, window []byte) (mask uint16, ok bool)")
	n := Load(Param("window").Len(), GP64())
	result := GP32()
	CMPQ(n, operand.Imm(16))
	JGE(operand.LabelRef("valid"))
	ok, err := ReturnIndex(1).Resolve()
	if err != nil {
		panic(err)
	}
	XORL(result, result)
	Store(result.As16(), ReturnIndex(0))
	MOVB(operand.Imm(0), ok.Addr)
	RET()

	Label("valid")
	c := Load(Param("b"), GP32())
	ptr := Load(Param("window").Base(), GP64())

	x0, x1, x2 := XMM(), XMM(), XMM()
	PXOR(x1, x1)
	MOVD(c, x0)
	PSHUFB(x1, x0)
	// MOVOU is how MOVDQU is spelled in Go asm.
	MOVOU(operand.Mem{Base: ptr}, x2)
	PCMPEQB(x2, x0)
	PMOVMSKB(x0, result)
	Store(result.As16(), ReturnIndex(0))
	MOVB(operand.Imm(1), ok.Addr)
	RET()
	Generate()
}

/*
TEXT("Add", NOSPLIT, "func(x, y uint64) uint64")
Doc("Add adds x and y.")
x := Load(Param("x"), GP64())
y := Load(Param("y"), GP64())
ADDQ(x, y)
Store(y, ReturnIndex(0))
RET()
Generate()
*/

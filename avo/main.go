package main

import (
	"fmt"
	"math/bits"
)

func main() {
	c := uint8(42)
	window := []byte{42, 0, 42, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 42, 0, 0}
	// window := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	window = window[2:]
	fmt.Println(len(window))
	res, ok := matchByte(c, window)
	fmt.Println(res, ok)
	zeros := bits.TrailingZeros16(res)
	if zeros == 16 {
		fmt.Println("no match")
	} else {
		for {
			index := bits.TrailingZeros16(res)
			fmt.Println("match:", index)
			res &= ^(uint16(1) << index)
			if res == 0 {
				break
			}
		}
	}

}

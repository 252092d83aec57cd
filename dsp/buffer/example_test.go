package buffer_test

import (
	"fmt"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/buffer"
)

func ExampleStereo_Deinterleave() {
	block := buffer.NewStereo(0)
	block.Deinterleave([]float32{1, 2, 3, 4, 5, 6}, 2)

	fmt.Println(block.Left, block.Right)

	out := make([]float32, 6)
	block.Interleave(out, 2)
	fmt.Println(out)

	// Output:
	// [1 3 5] [2 4 6]
	// [1 2 3 4 5 6]
}

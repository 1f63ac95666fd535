package encoder_test

import (
	"fmt"

	"github.com/katalvlaran/tsetlin/encoder"
)

// ExampleEncoder_Encode encodes a 1×4 strip with a 1×2 sliding window.
// Each patch carries two column-offset features plus the two window cells,
// followed by the negations of those four features.
func ExampleEncoder_Encode() {
	enc, _ := encoder.New([]int{1, 1, 4}, []int{1, 2})
	fmt.Println(enc.Geometry())

	x, _ := enc.Encode(encoder.Tensor{Shape: []int{1, 1, 4}, Data: []uint8{1, 1, 0, 1}})
	for p := 0; p < x.Patches(); p++ {
		fmt.Printf("patch %d:", p)
		for k := 0; k < x.Literals(); k++ {
			v, _ := x.Literal(0, p, k)
			if v {
				fmt.Print("1")
			} else {
				fmt.Print("0")
			}
		}
		fmt.Println()
	}

	// Output:
	// 1x4x1/patch 1x2 (features=4 patches=3 chunks=1)
	// patch 0:00111100
	// patch 1:10100101
	// patch 2:11010010
}

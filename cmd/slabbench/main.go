// Command slabbench compares raw system allocation against the slab
// allocator for a run of same-sized, long-lived objects, mirroring the
// malloc-vs-cache comparison the original implementation's main.c
// benchmarked through argv[1].
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
	"unsafe"

	"github.com/nmxmxh/uslab/slab"
)

func main() {
	n := flag.Int("n", 1000000, "number of objects to allocate")
	mode := flag.String("mode", "slab", "allocation strategy: slab or sysalloc")
	flag.Parse()

	if *n <= 0 {
		fmt.Fprintln(os.Stderr, "slabbench: -n must be positive")
		os.Exit(1)
	}

	switch *mode {
	case "slab":
		runSlabMode(*n)
	case "sysalloc":
		runSysallocMode(*n)
	default:
		fmt.Fprintf(os.Stderr, "slabbench: unknown -mode %q (want slab or sysalloc)\n", *mode)
		os.Exit(1)
	}
}

func runSlabMode(n int) {
	fmt.Printf("allocating %d long integers with the slab allocator\n", n)

	cache, err := slab.NewCache(unsafe.Sizeof(int64(0)), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slabbench: cache init failed: %v\n", err)
		os.Exit(1)
	}
	defer cache.Destroy()

	objs := make([]unsafe.Pointer, 0, n)

	start := time.Now()
	for i := 0; i < n; i++ {
		obj := cache.Alloc()
		if obj == nil {
			fmt.Fprintln(os.Stderr, "slabbench: failed to allocate an object from the cache")
			os.Exit(1)
		}
		*(*int64)(obj) = int64(i)
		objs = append(objs, obj)
	}
	elapsed := time.Since(start)

	fmt.Printf("allocated %d objects in %s\n", n, elapsed)
	cache.Dump(os.Stdout)

	for _, obj := range objs {
		cache.Free(obj)
	}
}

func runSysallocMode(n int) {
	fmt.Printf("allocating %d long integers with new()\n", n)

	objs := make([]*int64, 0, n)

	start := time.Now()
	for i := 0; i < n; i++ {
		v := new(int64)
		*v = int64(i)
		objs = append(objs, v)
	}
	elapsed := time.Since(start)

	fmt.Printf("allocated %d objects in %s\n", n, elapsed)
}

// Package serialization provides the .born format for saving and loading
// scalar model parameters.
//
// A .born file stores named float64 parameters behind a JSON header:
//
//	Format Structure:
//	  [0x00: 4 bytes  Magic "BORN"]
//	  [0x04: 4 bytes  Version (uint32 LE)]
//	  [0x08: 4 bytes  Flags (uint32 LE)]
//	  [0x0C: 4 bytes  Reserved]
//	  [0x10: 8 bytes  Header Size (uint64 LE)]
//	  [0x18: 8 bytes  Data Size (uint64 LE)]
//	  [0x20: 32 bytes SHA-256 of header JSON + data]
//	  [0x40: Header: JSON metadata]
//	  [Parameter data: float64 LE, 8-byte aligned]
//
// Example usage:
//
//	// Save
//	params := []serialization.Param{{Name: "layers.0.neurons.0.w.0", Value: 0.5}}
//	if err := serialization.WriteFile("model.born", params, serialization.Header{ModelType: "MLP"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load
//	header, params, err := serialization.ReadFile("model.born")
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization

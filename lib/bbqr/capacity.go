// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

// Capacity describes one QR code version: its side length in modules
// and how many alphanumeric-mode characters it holds at error
// correction level L. BBQr frames use only characters from the QR
// alphanumeric set, so this is the number that bounds a frame.
type Capacity struct {
	Version      int
	Size         int
	Alphanumeric int
}

// MinVersion and MaxVersion bound the capacity table. Versions below 5
// hold too few characters to be useful once the 8-character header is
// subtracted, so they are absent.
const (
	MinVersion = 5
	MaxVersion = 40
)

// alphanumericCapacity is indexed by version-MinVersion. Values are the
// alphanumeric capacities at ECC level L from ISO/IEC 18004 table 7.
var alphanumericCapacity = [MaxVersion - MinVersion + 1]int{
	154, 195, 224, 279, 335, 395, 468, 535, 619, 667, // 5-14
	758, 854, 938, 1046, 1153, 1249, 1352, 1460, 1588, 1704, // 15-24
	1853, 1990, 2132, 2223, 2369, 2520, 2677, 2840, 3009, 3183, // 25-34
	3351, 3537, 3729, 3927, 4087, 4296, // 35-40
}

// CapacityFor returns the capacity of the given QR version. The second
// result is false for versions outside [MinVersion, MaxVersion].
func CapacityFor(version int) (Capacity, bool) {
	if version < MinVersion || version > MaxVersion {
		return Capacity{}, false
	}
	return Capacity{
		Version:      version,
		Size:         17 + 4*version,
		Alphanumeric: alphanumericCapacity[version-MinVersion],
	}, true
}

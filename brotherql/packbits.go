package brotherql

// packBits compresses one raster row with the TIFF PackBits scheme used
// by the printers' compressed raster mode: a negative count byte -(n-1)
// followed by a byte repeated n times, or a count byte n-1 followed by
// n literal bytes.
func packBits(row []byte) []byte {
	if len(row) == 0 {
		return nil
	}

	out := make([]byte, 0, len(row)+len(row)/128+1)
	i := 0
	for i < len(row) {
		// Measure the run starting at i.
		run := 1
		for i+run < len(row) && row[i+run] == row[i] && run < 128 {
			run++
		}

		if run >= 2 {
			out = append(out, byte(-(int8(run - 1))), row[i])
			i += run
			continue
		}

		// Literal segment: scan until a run of >=3 starts or we hit 128 bytes.
		start := i
		i++
		for i < len(row) && i-start < 128 {
			if i+2 < len(row) && row[i] == row[i+1] && row[i] == row[i+2] {
				break
			}
			i++
		}
		out = append(out, byte(i-start-1))
		out = append(out, row[start:i]...)
	}
	return out
}

package soundfont

import (
	"strings"
)

// PlaybackSampleRate is the output rate of the audio driver.
const PlaybackSampleRate = 32000.0

// NoteC4 is middle C, the note that plays a sample at its own rate.
const NoteC4 = 0x27

// pitchTable holds 2^(note/12) relative to C4, as the audio driver stores it.
var pitchTable = [128]float32{
	0.105112, 0.111362, 0.117984, 0.125, 0.132433, 0.140308, 0.148651, 0.15749,
	0.166855, 0.176777, 0.187288, 0.198425, 0.210224, 0.222725, 0.235969, 0.25,
	0.264866, 0.280616, 0.297302, 0.31498, 0.33371, 0.353553, 0.374577, 0.39685,
	0.420448, 0.445449, 0.471937, 0.5, 0.529732, 0.561231, 0.594604, 0.629961,
	0.66742, 0.707107, 0.749154, 0.793701, 0.840897, 0.890899, 0.943875, 1.0,
	1.059463, 1.122462, 1.189207, 1.259921, 1.33484, 1.414214, 1.498307, 1.587401,
	1.681793, 1.781798, 1.887749, 2.0, 2.118926, 2.244924, 2.378414, 2.519842,
	2.66968, 2.828428, 2.996615, 3.174803, 3.363586, 3.563596, 3.775498, 4.0,
	4.237853, 4.489849, 4.756829, 5.039685, 5.33936, 5.656855, 5.993229, 6.349606,
	6.727173, 7.127192, 7.550996, 8.0, 8.475705, 8.979697, 9.513658, 10.07937,
	10.6787205, 11.31371, 11.986459, 12.699211, 13.454346, 14.254383, 15.101993, 16.0,
	16.95141, 17.959395, 19.027315, 20.15874, 21.35744, 22.62742, 23.972918, 25.398422,
	26.908691, 28.508766, 30.203985, 32.0, 33.90282, 35.91879, 38.05463, 40.31748,
	42.71488, 45.25484, 47.945835, 50.796845, 53.817383, 57.017532, 60.40797, 64.0,
	67.80564, 71.83758, 76.10926, 80.63496, 85.42976, 0.055681, 0.058992, 0.0625,
	0.066216, 0.070154, 0.074325, 0.078745, 0.083427, 0.088388, 0.093644, 0.099213,
}

var noteNames = [128]string{
	"A0", "BF0", "B0", "C1", "DF1", "D1", "EF1", "E1", "F1", "GF1", "G1", "AF1", "A1", "BF1", "B1",
	"C2", "DF2", "D2", "EF2", "E2", "F2", "GF2", "G2", "AF2", "A2", "BF2", "B2", "C3", "DF3", "D3",
	"EF3", "E3", "F3", "GF3", "G3", "AF3", "A3", "BF3", "B3", "C4", "DF4", "D4", "EF4", "E4", "F4",
	"GF4", "G4", "AF4", "A4", "BF4", "B4", "C5", "DF5", "D5", "EF5", "E5", "F5", "GF5", "G5", "AF5",
	"A5", "BF5", "B5", "C6", "DF6", "D6", "EF6", "E6", "F6", "GF6", "G6", "AF6", "A6", "BF6", "B6",
	"C7", "DF7", "D7", "EF7", "E7", "F7", "GF7", "G7", "AF7", "A7", "BF7", "B7", "C8", "DF8", "D8",
	"EF8", "E8", "F8", "GF8", "G8", "AF8", "A8", "BF8", "B8", "C9", "DF9", "D9", "EF9", "E9", "F9",
	"GF9", "G9", "AF9", "A9", "BF9", "B9", "C10", "DF10", "D10", "EF10", "E10", "F10", "BFNEG1", "BNEG1", "C0",
	"DF0", "D0", "EF0", "E0", "F0", "GF0", "G0", "AF0",
}

// Tuning is the playback rate ratio of a sample recorded at sampleRate whose
// pitch is baseNote. The computation is done in single precision.
func Tuning(sampleRate float64, baseNote int) float32 {
	var ratio = float32(float32(sampleRate) / PlaybackSampleRate)
	return float32(ratio * pitchTable[baseNote&0x7F])
}

// MidiToZ64Note converts a MIDI note (middle C 60) to a driver note (middle C 39).
func MidiToZ64Note(note int) int {
	var result = note - 21
	if result < 0 {
		result = result + 128
	}
	return result
}

func NoteName(note int) string {
	return noteNames[note&0x7F]
}

// ParseNote accepts a note name or a note number in [0, 127].
func ParseNote(value string) (int, error) {
	var upper = strings.ToUpper(strings.TrimSpace(value))

	for i, name := range noteNames {
		if name == upper {
			return i, nil
		}
	}

	number, err := parseInteger(value, 32)
	if err != nil || number < 0 || number > 127 {
		return 0, errNotANote
	}

	return int(number), nil
}

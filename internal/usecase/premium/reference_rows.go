package premium

// ReferenceRow is one precomputed premium calculation used as an interpolation anchor
type ReferenceRow struct {
	Years            float64
	GroundRent       float64
	ExtendedValue    float64
	DefermentRatePct float64
	Total            float64
	GRC              float64
	PVC              float64
	MarriageValue    float64
}

// referenceRows is the compiled-in reference table: £500,000 extended value, £500 ground rent
// Never mutate it; ReferenceRows hands out copies
var referenceRows = []ReferenceRow{
	{Years: 1, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 494774, GRC: 472, PVC: 470292, MarriageValue: 24010},
	{Years: 5, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 428572, GRC: 2106, PVC: 386910, MarriageValue: 39556},
	{Years: 10, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 359311, GRC: 3680, PVC: 303154, MarriageValue: 52477},
	{Years: 15, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 302315, GRC: 4856, PVC: 237529, MarriageValue: 59930},
	{Years: 20, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 255222, GRC: 5735, PVC: 186110, MarriageValue: 63377},
	{Years: 25, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 216141, GRC: 6392, PVC: 145822, MarriageValue: 63927},
	{Years: 30, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 183557, GRC: 6882, PVC: 114256, MarriageValue: 62419},
	{Years: 40, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 133251, GRC: 7523, PVC: 70143, MarriageValue: 55584},
	{Years: 50, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 97146, GRC: 7881, PVC: 43062, MarriageValue: 46203},
	{Years: 60, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 70577, GRC: 8081, PVC: 26436, MarriageValue: 36060},
	{Years: 70, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 50475, GRC: 8192, PVC: 16230, MarriageValue: 26053},
	{Years: 79, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 36215, GRC: 8250, PVC: 10462, MarriageValue: 17503},
	{Years: 80, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 34804, GRC: 8255, PVC: 9964, MarriageValue: 16586},
	{Years: 81, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 17748, GRC: 8259, PVC: 9489, MarriageValue: 0},
	{Years: 90, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 14406, GRC: 8289, PVC: 6117, MarriageValue: 0},
	{Years: 100, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 12064, GRC: 8309, PVC: 3755, MarriageValue: 0},
	{Years: 200, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 8362, GRC: 8333, PVC: 29, MarriageValue: 0},
	{Years: 500, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 5, Total: 8333, GRC: 8333, PVC: 0, MarriageValue: 0},
	{Years: 1000, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 4, Total: 8333, GRC: 8333, PVC: 0, MarriageValue: 0},
	{Years: 70, GroundRent: 500, ExtendedValue: 500000, DefermentRatePct: 8, Total: 43502, GRC: 8192, PVC: 2285, MarriageValue: 33025},
}

// ReferenceRows returns a copy of the compiled-in reference table
func ReferenceRows() []ReferenceRow {
	out := make([]ReferenceRow, len(referenceRows))
	copy(out, referenceRows)
	return out
}

// Package scanner walks a rendered myTime weekly schedule and extracts its shifts.
//
// The weekly view renders one container per day with ids "0" through "6". Each
// container carries a label naming its date and holds one element per shift whose
// label contains "shift from". The scanner reads those labels with goquery and hands
// them to the shift package. A Session accumulates shifts across repeated scans of
// a changing page and skips labels it has already seen.
package scanner

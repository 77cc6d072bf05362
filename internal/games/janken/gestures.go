package janken

// Hand art for the three gestures, in left-facing (player) and
// right-facing (opponent) variants. All lines in a set share one width so
// the blocks can be drawn as rectangles.

const gestureHeight = 6

var leftHands = map[Choice][]string{
	Rock: {
		`    _______     `,
		`---'   ____)    `,
		`      (_____)   `,
		`      (_____)   `,
		`      (____)    `,
		`---.__(___)     `,
	},
	Paper: {
		`    _______     `,
		`---'   ____)____`,
		`          ______`,
		`          ______`,
		`         _______`,
		`---.____________`,
	},
	Scissors: {
		`    _______     `,
		`---'   ____)____`,
		`          ______`,
		`       _________`,
		`      (____)    `,
		`---.__(___)     `,
	},
}

var rightHands = map[Choice][]string{
	Rock: {
		`     _______    `,
		`    (____   '---`,
		`   (_____)      `,
		`   (_____)      `,
		`    (____)      `,
		`     (___)__.---`,
	},
	Paper: {
		`     _______    `,
		`____(____   '---`,
		`______          `,
		`______          `,
		`_______         `,
		`____________.---`,
	},
	Scissors: {
		`     _______    `,
		`____(____   '---`,
		`______          `,
		`_________       `,
		`    (____)      `,
		`     (___)__.---`,
	},
}

// LeftHand returns the player-side art for a gesture.
func LeftHand(c Choice) []string {
	return leftHands[c]
}

// RightHand returns the opponent-side art for a gesture.
func RightHand(c Choice) []string {
	return rightHands[c]
}

// Shake frames: both sides pump a closed fist during the countdown.
// The bob is a one-row vertical offset keyed off the animation tick.

// shakeOffset returns the vertical offset of the fists for an animation tick.
func shakeOffset(tick int) int {
	if tick%2 == 0 {
		return 0
	}
	return 1
}

// defaultCaptions is the classic call, one caption per countdown beat.
var defaultCaptions = []string{"Rock...", "Paper...", "Scissors...", "Shoot!"}

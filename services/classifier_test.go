package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		question string
		want     QueryType
	}{
		{"What is Jon Jones's record?", QueryFighterRecord},
		{"What is Alexander Volkanovski's win-loss record?", QueryFighterRecord},
		{"How tall is Israel Adesanya?", QueryFighterStats},
		{"What is Jon Jones's reach?", QueryFighterStats},
		{"How old is José Aldo?", QueryFighterStats},
		{"When is the next UFC event?", QueryEvent},
		{"What was the last card?", QueryEvent},
		{"Where is the next fight night?", QueryEvent},
		{"What was the most recent fight night?", QueryEvent},
		{"Show the lightweight rankings", QueryRankings},
		{"Who is the heavyweight champion?", QueryRankings},
		{"Show me the p4p list", QueryRankings},
		{"Who is ranked pound for pound?", QueryRankings},
		{"Show Islam Makhachev's last 3 fights", QueryFighterFights},
		{"What is Max Holloway's fight history?", QueryFighterFights},

		// nothing matched
		{"", QueryUnknown},
		{"   ", QueryUnknown},
		{"?!?", QueryUnknown},
		{"asdfghjkl qwerty", QueryUnknown},
		{"Tell me about pizza", QueryUnknown},
		// a bare noun phrase carries no interrogative frame
		{"Upcoming UFC card", QueryUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.question, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.question).Type)
		})
	}
}

func TestClassifyCaptureGroups(t *testing.T) {
	intent := Classify("Show Islam Makhachev's last 3 fights")
	assert.Equal(t, QueryFighterFights, intent.Type)
	assert.Equal(t, "3", intent.Group("count"))

	intent = Classify("What is Max Holloway's fight history?")
	assert.Equal(t, QueryFighterFights, intent.Type)
	assert.Empty(t, intent.Group("count"))

	intent = Classify("What was the last card?")
	assert.Equal(t, QueryEvent, intent.Type)
	assert.Equal(t, "last", intent.Group("direction"))

	intent = Classify("When is the next UFC event?")
	assert.Equal(t, "next", intent.Group("direction"))

	// Group never panics on a capture the pattern didn't produce
	assert.Empty(t, Classify("random text").Group("direction"))
}

func TestClassifyPrecedence(t *testing.T) {
	// "record" always outranks the stats vocabulary
	intent := Classify("What is Jon Jones's record and reach?")
	assert.Equal(t, QueryFighterRecord, intent.Type)

	// fight history outranks the event vocabulary
	intent = Classify("What were Islam Makhachev's last 2 fights?")
	assert.Equal(t, QueryFighterFights, intent.Type)
}

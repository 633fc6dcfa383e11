package scoring

import "testing"

func TestKeywordSentiment(t *testing.T) {
	k := NewKeywordSentiment()

	tests := []struct {
		text string
		sign int // -1, 0, +1
	}{
		{"", 0},
		{"the meeting ran long", 0},
		{"had a great day, so happy and grateful!", 1},
		{"feeling tired and stressed, everything is awful", -1},
		{"happy but also a bit tired", 0}, // one positive, one negative
	}

	for _, tt := range tests {
		got := k.Score(tt.text)
		if got < -1 || got > 1 {
			t.Errorf("Score(%q) = %v, out of [-1,1]", tt.text, got)
		}
		switch tt.sign {
		case 1:
			if got <= 0 {
				t.Errorf("Score(%q) = %v, want positive", tt.text, got)
			}
		case -1:
			if got >= 0 {
				t.Errorf("Score(%q) = %v, want negative", tt.text, got)
			}
		case 0:
			if got != 0 {
				t.Errorf("Score(%q) = %v, want 0", tt.text, got)
			}
		}
	}
}

func TestKeywordSentimentClamped(t *testing.T) {
	k := NewKeywordSentiment()

	long := "happy happy happy happy happy happy happy happy"
	if got := k.Score(long); got != 1 {
		t.Errorf("heavily positive text should clamp to 1, got %v", got)
	}
}

func TestKeywordSentimentPunctuation(t *testing.T) {
	k := NewKeywordSentiment()
	if got := k.Score("Happy!"); got <= 0 {
		t.Errorf("punctuation should not block matches, got %v", got)
	}
}

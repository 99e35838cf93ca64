package language

import "testing"

func TestDetect(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "polish",
			text:   "Rada miasta przyjęła w piątek budżet na przyszły rok. Radni głosowali przez kilka godzin, a dyskusja dotyczyła głównie inwestycji drogowych.",
			want:   "pl",
			wantOK: true,
		},
		{
			name:   "english",
			text:   "The city council approved next year's budget on Friday after several hours of debate about road investments and public transport.",
			want:   "en",
			wantOK: true,
		},
		{
			name:   "german",
			text:   "Der Stadtrat hat am Freitag nach stundenlanger Debatte den Haushalt für das kommende Jahr verabschiedet.",
			want:   "de",
			wantOK: true,
		},
		{
			name:   "too short",
			text:   "Hello",
			wantOK: false,
		},
		{
			name:   "empty",
			text:   "   ",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Detect() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

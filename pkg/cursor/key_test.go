package cursor

import "testing"

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "endpoint and chain",
			key:  Key{Endpoint: "games", Chain: "nightly-import"},
			want: "igdb:scroll:games:nightly-import",
		},
		{
			name: "slashes trimmed",
			key:  Key{Endpoint: "/release_dates/", Chain: "a"},
			want: "igdb:scroll:release_dates:a",
		},
		{
			name: "default chain",
			key:  Key{Endpoint: "games"},
			want: "igdb:scroll:games:default",
		},
		{
			name: "blank chain",
			key:  Key{Endpoint: "games", Chain: "  "},
			want: "igdb:scroll:games:default",
		},
		{
			name: "empty endpoint",
			key:  Key{Chain: "x"},
			want: "igdb:scroll:_:x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_Deterministic(t *testing.T) {
	key := Key{Endpoint: "games", Chain: "c"}
	if key.String() != key.String() {
		t.Error("String() should be deterministic")
	}
	other := Key{Endpoint: "games", Chain: "d"}
	if key.String() == other.String() {
		t.Error("different chains must map to different keys")
	}
}

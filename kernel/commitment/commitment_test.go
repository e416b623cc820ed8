package commitment

import "testing"

func TestCommitVerifyOpenRoundTrip(t *testing.T) {
	data := []byte("fair exchange payload")
	com, opening, err := Commit(data)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !VerifyOpen(com, opening) {
		t.Errorf("VerifyOpen rejected a genuine opening")
	}
}

func TestVerifyOpenRejectsTamperedData(t *testing.T) {
	com, opening, err := Commit([]byte("original"))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	opening.Data = []byte("tampered")
	if VerifyOpen(com, opening) {
		t.Errorf("VerifyOpen accepted a tampered opening")
	}
}

func TestVerifyOpenRejectsTamperedNonce(t *testing.T) {
	com, opening, err := Commit([]byte("original"))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	opening.Nonce[0] ^= 0xFF
	if VerifyOpen(com, opening) {
		t.Errorf("VerifyOpen accepted an opening with a tampered nonce")
	}
}

func TestCommitIsNondeterministic(t *testing.T) {
	com1, _, err := Commit([]byte("same data"))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	com2, _, err := Commit([]byte("same data"))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if com1 == com2 {
		t.Errorf("two commitments to the same data should differ (random nonce)")
	}
}

package cron

import (
	"blogpessoal/internal/job"
	"testing"
)

func TestManager_RegisterJobs(t *testing.T) {
	mgr := NewCronManager("@hourly", job.NewOrphanPostagemJob(nil))
	if err := mgr.Launch(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mgr.Stop()

	if mgr.Entries() != 1 {
		t.Fatalf("expected 1 job but got %d", mgr.Entries())
	}
}

func TestManager_InvalidSpec(t *testing.T) {
	mgr := NewCronManager("not a spec", job.NewOrphanPostagemJob(nil))
	if err := mgr.RegisterJobs(); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

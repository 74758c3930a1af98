package store

import (
	"time"

	"github.com/TamannaDash/queuectl/job"
	"github.com/uptrace/bun"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`
	Id            string `bun:"id,pk"`

	Command string `bun:"command,notnull"`

	State      job.State `bun:"state,notnull,default:1"`
	Attempts   uint32    `bun:"attempts,notnull,default:0"`
	MaxRetries uint32    `bun:"max_retries,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	NextRetryAt  *time.Time `bun:"next_retry_at,nullzero,default:null"`
	ErrorMessage *string    `bun:"error_message,nullzero,default:null"`
	ClaimedBy    *string    `bun:"claimed_by,nullzero,default:null"`
}

func (jm *jobModel) toJob() *job.Job {
	return &job.Job{
		Id:           jm.Id,
		Command:      jm.Command,
		State:        jm.State,
		Attempts:     jm.Attempts,
		MaxRetries:   jm.MaxRetries,
		CreatedAt:    jm.CreatedAt,
		UpdatedAt:    jm.UpdatedAt,
		NextRetryAt:  jm.NextRetryAt,
		ErrorMessage: jm.ErrorMessage,
		ClaimedBy:    jm.ClaimedBy,
	}
}

func fromJob(jb *job.Job, now time.Time) *jobModel {
	return &jobModel{
		Id:         jb.Id,
		Command:    jb.Command,
		State:      job.Pending,
		Attempts:   0,
		MaxRetries: jb.MaxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// kvModel backs the typed configuration store: a small closed set of
// keys, each holding its value as text. Typed parsing and validation
// live in package config, one layer up.
type kvModel struct {
	bun.BaseModel `bun:"table:kv"`
	Key           string `bun:"key,pk"`
	Value         string `bun:"value,notnull"`
}

// Package config loads the calendar agent's user-level settings: working
// hours, timezone, ranking keyword sets, internal domains, and analysis
// thresholds.
//
// Settings come from ~/.calagent.yaml with CALAGENT_* environment variable
// overrides. The analysis engine never reads configuration itself; this
// package translates the file into explicit schedule.WorkWindow and
// schedule.RankingRules values passed into each call.
package config

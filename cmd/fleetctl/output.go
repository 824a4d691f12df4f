package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	pb "github.com/KevinKickass/OpenFleetCore/api/proto"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type deviceView struct {
	ID              string `json:"device_id" yaml:"device_id"`
	Name            string `json:"device_name" yaml:"device_name"`
	Type            string `json:"device_type" yaml:"device_type"`
	Status          string `json:"status" yaml:"status"`
	RegisteredAt    string `json:"registered_at" yaml:"registered_at"`
	LastUpdated     string `json:"last_updated" yaml:"last_updated"`
	CurrentActionID string `json:"current_action_id,omitempty" yaml:"current_action_id,omitempty"`
}

type actionView struct {
	ID           string            `json:"action_id" yaml:"action_id"`
	DeviceID     string            `json:"device_id" yaml:"device_id"`
	Type         string            `json:"action_type" yaml:"action_type"`
	Status       string            `json:"status" yaml:"status"`
	Progress     int32             `json:"progress" yaml:"progress"`
	InitiatedAt  string            `json:"initiated_at" yaml:"initiated_at"`
	CompletedAt  string            `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Params       map[string]string `json:"action_params,omitempty" yaml:"action_params,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

func newDeviceView(d *pb.DeviceInfo) deviceView {
	return deviceView{
		ID:              d.DeviceId,
		Name:            d.DeviceName,
		Type:            d.DeviceType,
		Status:          d.Status.String(),
		RegisteredAt:    formatTimestamp(d.RegisteredAt),
		LastUpdated:     formatTimestamp(d.LastUpdated),
		CurrentActionID: d.CurrentActionId,
	}
}

func newActionView(a *pb.ActionInfo) actionView {
	v := actionView{
		ID:           a.ActionId,
		DeviceID:     a.DeviceId,
		Type:         a.ActionType.String(),
		Status:       a.Status.String(),
		Progress:     a.Progress,
		InitiatedAt:  formatTimestamp(a.InitiatedAt),
		Params:       a.ActionParams,
		ErrorMessage: a.ErrorMessage,
	}
	if a.CompletedAt > 0 {
		v.CompletedAt = formatTimestamp(a.CompletedAt)
	}
	return v
}

// formatTimestamp renders unix seconds in UTC, "N/A" when unset.
func formatTimestamp(sec int64) string {
	if sec == 0 {
		return "N/A"
	}
	return time.Unix(sec, 0).UTC().Format("2006-01-02 15:04:05")
}

// encode writes v as JSON or YAML. It reports false for table output.
func encode(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func printDeviceTable(w io.Writer, devices []deviceView) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "DEVICE ID\tNAME\tTYPE\tSTATUS\tACTION")
	fmt.Fprintln(tw, "---------\t----\t----\t------\t------")
	for _, d := range devices {
		action := d.CurrentActionID
		if action == "" {
			action = "None"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Type, d.Status, action)
	}
	tw.Flush()
}

func printDeviceDetail(w io.Writer, d deviceView) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  ID:\t%s\n", d.ID)
	fmt.Fprintf(tw, "  Name:\t%s\n", d.Name)
	fmt.Fprintf(tw, "  Type:\t%s\n", d.Type)
	fmt.Fprintf(tw, "  Status:\t%s\n", d.Status)
	fmt.Fprintf(tw, "  Registered:\t%s\n", d.RegisteredAt)
	fmt.Fprintf(tw, "  Last Updated:\t%s\n", d.LastUpdated)
	action := d.CurrentActionID
	if action == "" {
		action = "None"
	}
	fmt.Fprintf(tw, "  Current Action:\t%s\n", action)
	tw.Flush()
}

func printActionDetail(w io.Writer, a actionView, initiated, completed int64) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Action ID:\t%s\n", a.ID)
	fmt.Fprintf(tw, "  Device ID:\t%s\n", a.DeviceID)
	fmt.Fprintf(tw, "  Action Type:\t%s\n", a.Type)
	fmt.Fprintf(tw, "  Status:\t%s\n", a.Status)
	fmt.Fprintf(tw, "  Progress:\t%d%%\n", a.Progress)
	fmt.Fprintf(tw, "  Initiated:\t%s\n", a.InitiatedAt)
	if completed > 0 {
		fmt.Fprintf(tw, "  Completed:\t%s\n", a.CompletedAt)
		fmt.Fprintf(tw, "  Duration:\t%d seconds\n", completed-initiated)
	} else {
		fmt.Fprintf(tw, "  Completed:\tIn progress...\n")
	}
	if a.ErrorMessage != "" {
		fmt.Fprintf(tw, "  Error:\t%s\n", a.ErrorMessage)
	}
	tw.Flush()

	if len(a.Params) > 0 {
		fmt.Fprintln(w, "  Parameters:")
		for _, k := range slices.Sorted(maps.Keys(a.Params)) {
			fmt.Fprintf(w, "    %s = %s\n", k, a.Params[k])
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	pb "github.com/KevinKickass/OpenFleetCore/api/proto"
	"github.com/spf13/cobra"
)

func parseActionType(s string) (pb.ActionType, error) {
	v, ok := pb.ActionType_value[strings.ToUpper(strings.TrimSpace(s))]
	if !ok || v == int32(pb.ActionType_ACTION_TYPE_UNKNOWN) {
		return 0, fmt.Errorf("invalid action type %q", s)
	}
	return pb.ActionType(v), nil
}

// parseParams turns KEY=VALUE pairs into a map. Malformed pairs are reported
// on warn and skipped.
func parseParams(pairs []string, warn io.Writer) map[string]string {
	params := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			fmt.Fprintf(warn, "Warning: Invalid parameter format '%s'. Expected KEY=VALUE\n", p)
			continue
		}
		params[key] = value
	}
	return params
}

func (a *app) initiateActionCommand() *cobra.Command {
	var pairs []string

	cmd := &cobra.Command{
		Use:   "initiate-action <device_id> <action_type>",
		Short: "Start an action on a device",
		Long: `Start an action on a device. Valid action types: SOFTWARE_UPDATE,
FIRMWARE_UPDATE, SYSTEM_REBOOT, CONFIGURATION_CHANGE.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actionType, err := parseActionType(args[1])
			if err != nil {
				return err
			}
			params := parseParams(pairs, cmd.ErrOrStderr())

			return a.call(cmd, func(ctx context.Context, client pb.DeviceManagementServiceClient) error {
				resp, err := client.InitiateDeviceAction(ctx, &pb.InitiateDeviceActionRequest{
					DeviceId:     args[0],
					ActionType:   actionType,
					ActionParams: params,
				})
				if err != nil {
					return err
				}

				if ok, err := encode(cmd.OutOrStdout(), a.output, map[string]string{
					"action_id":     resp.ActionId,
					"action_status": resp.ActionStatus.String(),
				}); ok {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Action initiated successfully")
				fmt.Fprintf(out, "  Action ID: %s\n", resp.ActionId)
				fmt.Fprintf(out, "  Status:    %s\n", resp.ActionStatus)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&pairs, "param", "p", nil, "action parameter as KEY=VALUE (repeatable)")

	return cmd
}

func (a *app) actionStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "action-status <action_id>",
		Short: "Show an action's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, func(ctx context.Context, client pb.DeviceManagementServiceClient) error {
				resp, err := client.GetDeviceActionStatus(ctx, &pb.GetDeviceActionStatusRequest{ActionId: args[0]})
				if err != nil {
					return err
				}

				info := resp.ActionInfo
				view := newActionView(info)
				if ok, err := encode(cmd.OutOrStdout(), a.output, view); ok {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Action Information:")
				printActionDetail(cmd.OutOrStdout(), view, info.InitiatedAt, info.CompletedAt)
				return nil
			})
		},
	}
}

// errActionFailed is returned by poll-action when the action ends FAILED.
var errActionFailed = errors.New("action failed")

func (a *app) pollActionCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "poll-action <action_id>",
		Short: "Poll an action until it completes or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}

			client, closer, err := a.dial(a.server)
			if err != nil {
				return err
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Polling action '%s' (interval: %s)...\n", args[0], interval)

			return rpcError(a.pollAction(cmd.Context(), client, args[0], interval, out))
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "delay between polls")

	return cmd
}

func (a *app) pollAction(ctx context.Context, client pb.DeviceManagementServiceClient, actionID string, interval time.Duration, out io.Writer) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := pb.ActionStatus_ACTION_STATUS_UNKNOWN
	lastProgress := int32(-1)

	for {
		reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
		resp, err := client.GetDeviceActionStatus(reqCtx, &pb.GetDeviceActionStatusRequest{ActionId: actionID})
		cancel()
		if err != nil {
			return err
		}

		info := resp.ActionInfo
		if info.Status != last || info.Progress != lastProgress {
			fmt.Fprintf(out, "[%s] Status: %s (%d%%)\n", time.Now().Format("15:04:05"), info.Status, info.Progress)
			last, lastProgress = info.Status, info.Progress
		}

		switch info.Status {
		case pb.ActionStatus_COMPLETED:
			fmt.Fprintln(out, "Action completed successfully!")
			return nil
		case pb.ActionStatus_FAILED:
			if info.ErrorMessage != "" {
				return fmt.Errorf("%w: %s", errActionFailed, info.ErrorMessage)
			}
			return errActionFailed
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("polling stopped: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

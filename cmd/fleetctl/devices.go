package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	pb "github.com/KevinKickass/OpenFleetCore/api/proto"
	"github.com/spf13/cobra"
)

// parseDeviceStatus accepts status names in any case.
func parseDeviceStatus(s string) (pb.DeviceStatus, error) {
	v, ok := pb.DeviceStatus_value[strings.ToUpper(strings.TrimSpace(s))]
	if !ok || v == int32(pb.DeviceStatus_DEVICE_STATUS_UNKNOWN) {
		return 0, fmt.Errorf("invalid status %q", s)
	}
	return pb.DeviceStatus(v), nil
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, func(ctx context.Context, client pb.DeviceManagementServiceClient) error {
				resp, err := client.ListDevices(ctx, &pb.ListDevicesRequest{})
				if err != nil {
					return err
				}

				views := make([]deviceView, 0, len(resp.Devices))
				for _, d := range resp.Devices {
					views = append(views, newDeviceView(d))
				}
				sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })

				if ok, err := encode(cmd.OutOrStdout(), a.output, views); ok {
					return err
				}

				if len(views) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No devices registered.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered Devices (%d total):\n", len(views))
				printDeviceTable(cmd.OutOrStdout(), views)
				return nil
			})
		},
	}
}

func (a *app) registerCommand() *cobra.Command {
	var name, deviceType, initialStatus string

	cmd := &cobra.Command{
		Use:   "register <device_id>",
		Short: "Register a new device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseDeviceStatus(initialStatus)
			if err != nil {
				return err
			}

			return a.call(cmd, func(ctx context.Context, client pb.DeviceManagementServiceClient) error {
				resp, err := client.RegisterDevice(ctx, &pb.RegisterDeviceRequest{
					DeviceId:      args[0],
					DeviceName:    name,
					DeviceType:    deviceType,
					InitialStatus: status,
				})
				if err != nil {
					return err
				}

				if ok, err := encode(cmd.OutOrStdout(), a.output, map[string]string{
					"device_id": resp.DeviceId,
					"message":   resp.Message,
				}); ok {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Device '%s' registered successfully\n", resp.DeviceId)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "human-readable device name")
	cmd.Flags().StringVar(&deviceType, "type", "", "device type")
	cmd.Flags().StringVar(&initialStatus, "status", "IDLE", "initial device status")

	return cmd
}

func (a *app) setStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <device_id> <status>",
		Short: "Set a device's status",
		Long:  "Set a device's status. Valid statuses: IDLE, BUSY, OFFLINE, MAINTENANCE, UPDATING, RECOVERING, ERROR.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseDeviceStatus(args[1])
			if err != nil {
				return err
			}

			return a.call(cmd, func(ctx context.Context, client pb.DeviceManagementServiceClient) error {
				resp, err := client.SetDeviceStatus(ctx, &pb.SetDeviceStatusRequest{
					DeviceId: args[0],
					Status:   status,
				})
				if err != nil {
					return err
				}

				if ok, err := encode(cmd.OutOrStdout(), a.output, map[string]string{
					"device_id":       args[0],
					"previous_status": resp.PreviousStatus.String(),
					"current_status":  resp.CurrentStatus.String(),
				}); ok {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Device '%s' status updated:\n", args[0])
				fmt.Fprintf(out, "  Previous: %s\n", resp.PreviousStatus)
				fmt.Fprintf(out, "  Current:  %s\n", resp.CurrentStatus)
				return nil
			})
		},
	}
}

func (a *app) getInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-info <device_id>",
		Short: "Show a device's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, func(ctx context.Context, client pb.DeviceManagementServiceClient) error {
				resp, err := client.GetDeviceInfo(ctx, &pb.GetDeviceInfoRequest{DeviceId: args[0]})
				if err != nil {
					return err
				}

				view := newDeviceView(resp.DeviceInfo)
				if ok, err := encode(cmd.OutOrStdout(), a.output, view); ok {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Device Information:")
				printDeviceDetail(cmd.OutOrStdout(), view)
				return nil
			})
		},
	}
}

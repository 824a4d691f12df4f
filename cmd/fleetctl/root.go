package main

import (
	"context"
	"fmt"
	"io"
	"time"

	pb "github.com/KevinKickass/OpenFleetCore/api/proto"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// dialFunc opens a client for the server at target.
type dialFunc func(target string) (pb.DeviceManagementServiceClient, io.Closer, error)

func dialGRPC(target string) (pb.DeviceManagementServiceClient, io.Closer, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to server at %s: %w", target, err)
	}
	return pb.NewDeviceManagementServiceClient(conn), conn, nil
}

type app struct {
	server  string
	output  string
	timeout time.Duration
	dial    dialFunc
}

func newRootCommand(dial dialFunc) *cobra.Command {
	a := &app{dial: dial}

	cmd := &cobra.Command{
		Use:   "fleetctl",
		Short: "Manage a device fleet over gRPC",
		Long: `fleetctl talks to a fleet device manager server. It registers devices,
changes their status and starts long-running device actions such as
software or firmware updates.

Quick start:
  fleetctl register dev1 --name "Edge Gateway" --type gateway
  fleetctl initiate-action dev1 FIRMWARE_UPDATE --param version=2.1.0
  fleetctl poll-action <action_id>`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.output {
			case outputTable, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (use table, json or yaml)", a.output)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.server, "server", "localhost:50051", "gRPC server address")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "output format: table, json or yaml")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "timeout for each request")

	cmd.AddCommand(a.listCommand())
	cmd.AddCommand(a.registerCommand())
	cmd.AddCommand(a.setStatusCommand())
	cmd.AddCommand(a.getInfoCommand())
	cmd.AddCommand(a.initiateActionCommand())
	cmd.AddCommand(a.actionStatusCommand())
	cmd.AddCommand(a.pollActionCommand())

	return cmd
}

// call runs fn with a connected client and a per-request deadline.
func (a *app) call(cmd *cobra.Command, fn func(ctx context.Context, client pb.DeviceManagementServiceClient) error) error {
	client, closer, err := a.dial(a.server)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()

	return rpcError(fn(ctx, client))
}

// rpcError renders gRPC status errors as "<code> - <message>".
func rpcError(err error) error {
	if err == nil {
		return nil
	}
	if s, ok := status.FromError(err); ok {
		return fmt.Errorf("gRPC error: %s - %s", s.Code(), s.Message())
	}
	return err
}

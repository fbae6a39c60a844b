package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"deploy_networks/internal/domain/entity"
	"deploy_networks/internal/infrastructure/restapi"
	"deploy_networks/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 5 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	listCommand = cli.Command{
		Name:   "list",
		Usage:  "List the configured networks",
		Flags:  []cli.Flag{JSONFlag},
		Action: listNetworks,
	}
	showCommand = cli.Command{
		Name:      "show",
		Usage:     "Show a single network descriptor",
		ArgsUsage: "<name>",
		Flags:     []cli.Flag{JSONFlag},
		Action:    showNetwork,
	}
	checkCommand = cli.Command{
		Name:      "check",
		Usage:     "Open providers and verify chain id, block height, balance and gas price",
		ArgsUsage: "[name...]",
		Flags:     []cli.Flag{AllFlag, JSONFlag},
		Action:    checkNetworks,
	}
	serveCommand = cli.Command{
		Name:   "serve",
		Usage:  "Serve the network REST API and metrics",
		Flags:  []cli.Flag{AddrFlag},
		Action: serve,
	}
)

func listNetworks(ctx *cli.Context) error {
	app, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer app.Close()

	defs := app.service.List()
	out := ctx.App.Writer
	if ctx.Bool(JSONFlag.Name) {
		views := make([]restapi.APINetwork, 0, len(defs))
		for _, def := range defs {
			views = append(views, restapi.NewAPINetwork(def))
		}
		return writeJSON(out, views)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tURL\tNETWORK ID\tGAS\tGAS PRICE (GWEI)")
	for _, def := range defs {
		url := def.URL()
		if url == "" {
			url = "-"
		}
		gas := "-"
		if def.Gas > 0 {
			gas = strconv.FormatUint(def.Gas, 10)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", def.Name, def.Kind, url, def.NetworkID, gas, utils.FormatGweiUint(def.GasPrice))
	}
	return w.Flush()
}

func showNetwork(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("show expects exactly one network name", 2)
	}
	app, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer app.Close()

	desc, err := app.service.Describe(ctx.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if ctx.Bool(JSONFlag.Name) {
		return writeJSON(ctx.App.Writer, restapi.NewAPINetwork(desc))
	}

	w := tabwriter.NewWriter(ctx.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "name\t%s\n", desc.Name)
	fmt.Fprintf(w, "kind\t%s\n", desc.Kind)
	if desc.IsLocal() {
		fmt.Fprintf(w, "url\t%s\n", desc.URL())
		fmt.Fprintf(w, "gas\t%d\n", desc.Gas)
	} else {
		fmt.Fprintf(w, "provider\t%t\n", desc.Provider != nil)
	}
	fmt.Fprintf(w, "gasPrice\t%d wei (%s gwei)\n", desc.GasPrice, utils.FormatGweiUint(desc.GasPrice))
	fmt.Fprintf(w, "networkId\t%s\n", desc.NetworkID)
	return w.Flush()
}

func checkNetworks(ctx *cli.Context) error {
	names := ctx.Args().Slice()
	all := ctx.Bool(AllFlag.Name)
	if len(names) == 0 && !all {
		return cli.Exit("name at least one network or pass --all", 2)
	}
	app, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer app.Close()

	var statuses []entity.NetworkStatus
	if all {
		statuses = app.service.CheckAll(ctx.Context)
	} else {
		statuses = app.service.CheckMany(ctx.Context, names)
	}

	if ctx.Bool(JSONFlag.Name) {
		if err := writeJSON(ctx.App.Writer, statuses); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(ctx.App.Writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NETWORK\tHEALTHY\tCHAIN\tBLOCK\tACCOUNT\tBALANCE (ETH)\tGAS (GWEI)\tERROR")
		for _, st := range statuses {
			fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%s\t%s\t%s\t%s\n",
				st.Network, st.Healthy, st.ChainID, st.BlockNumber,
				orDash(st.Account), orDash(st.BalanceEther), orDash(st.SuggestedGasGwei), orDash(st.Error))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	failed := 0
	for _, st := range statuses {
		if !st.Healthy {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d network checks failed", failed, len(statuses)), 1)
	}
	return nil
}

func serve(ctx *cli.Context) error {
	app, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := restapi.SetupRouter(restapi.NewNetworkHandler(app.service, app.log), app.registry)

	addr := app.cfg.Server.Port
	if a := ctx.String(AddrFlag.Name); a != "" {
		addr = a
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(app.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(app.cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.log.Info("Starting HTTP server", "address", srv.Addr, "networks", app.networks.Names())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	signalCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			app.log.Error("HTTP server failed", "error", err)
			return err
		}
		return nil
	case <-signalCtx.Done():
	}

	app.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.log.Error("Graceful shutdown failed", "error", err)
		return err
	}
	app.log.Info("HTTP server stopped")
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

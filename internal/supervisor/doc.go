// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package supervisor runs the long-lived services of the serve command under a
suture v4 supervisor tree.

	RootSupervisor ("shopperspectrum")
	├── ModelSupervisor ("model-layer")
	│   └── ModelReloadService (polls the artifact store for newer builds)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The model is loaded or built before the tree starts, so a failing build stops
the process instead of being restarted. A crash in the reload loop restarts
only that service; the API keeps serving the model it already has.

Supervisor events are logged through sutureslog, backed by the zerolog slog
adapter in the logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddModelService(services.NewModelReloadService(spectrum.NewSource(store), handler, cfg.Artifacts.ReloadInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor

// Gamedex
// Copyright (c) 2025 The Gamedex Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Gamedex.
//
// Gamedex is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gamedex is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gamedex.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/config"
	"github.com/codecollision/gamedex/pkg/database"
	"github.com/codecollision/gamedex/pkg/linker"
	"github.com/codecollision/gamedex/pkg/matcher"
	"github.com/codecollision/gamedex/pkg/platformdefs"
	"github.com/codecollision/gamedex/pkg/providers/amazon"
	"github.com/codecollision/gamedex/pkg/providers/giantbomb"
	"github.com/codecollision/gamedex/pkg/providers/metacritic"
	"github.com/codecollision/gamedex/pkg/providers/steam"
	"github.com/codecollision/gamedex/pkg/providers/wikipedia"
	"github.com/codecollision/gamedex/pkg/service/enrich"
	"github.com/codecollision/gamedex/pkg/shared/httpclient"
	"github.com/jonboulle/clockwork"
)

// Clients is the set of provider clients and services built from a config.
type Clients struct {
	Amazon     *amazon.Client
	GiantBomb  *giantbomb.Client
	Metacritic *metacritic.Client
	Wikipedia  *wikipedia.Client
	Steam      *steam.Client
	Linker     *linker.Linker
	Enrich     *enrich.Service
}

// NewClients wires every provider to its own rate limited HTTP client. A
// nil store disables persistence of enrichment results.
func NewClients(cfg *config.Instance, store database.LinkStore, clock clockwork.Clock) *Clients {
	providers := cfg.Providers()
	platforms := platformdefs.Default()
	scorer := matcher.NewScorer(platforms)

	newHTTP := func(p catalog.Provider) *httpclient.Client {
		return httpclient.NewClient(httpclient.Options{
			Provider:          string(p),
			Timeout:           cfg.HTTPTimeout(),
			RequestsPerSecond: cfg.RequestsPerSecond(),
		})
	}

	c := &Clients{
		Amazon: amazon.New(amazon.Options{
			HTTP:         newHTTP(catalog.ProviderAmazon),
			Clock:        clock,
			BaseURL:      providers.Amazon.BaseURL,
			AssociateTag: providers.Amazon.AssociateTag,
			AccessKey:    providers.Amazon.AccessKey,
		}),
		GiantBomb: giantbomb.New(giantbomb.Options{
			HTTP:    newHTTP(catalog.ProviderGiantBomb),
			Clock:   clock,
			BaseURL: providers.GiantBomb.BaseURL,
			APIKey:  providers.GiantBomb.APIKey,
		}),
		Metacritic: metacritic.New(metacritic.Options{
			HTTP:    newHTTP(catalog.ProviderMetacritic),
			Scorer:  scorer,
			BaseURL: providers.Metacritic.BaseURL,
		}),
		Wikipedia: wikipedia.New(wikipedia.Options{
			HTTP:    newHTTP(catalog.ProviderWikipedia),
			BaseURL: providers.Wikipedia.BaseURL,
		}),
		Steam: steam.New(steam.Options{
			HTTP:        newHTTP(catalog.ProviderSteam),
			Scorer:      scorer,
			BaseURL:     providers.Steam.BaseURL,
			CountryCode: providers.Steam.CountryCode,
		}),
	}
	c.Linker = linker.New(c.Amazon, c.GiantBomb, scorer, platforms)

	c.Enrich = enrich.NewService(enrich.Options{
		Offers:    c.Amazon,
		Steam:     c.Steam,
		Metascore: c.Metacritic,
		Wikipedia: c.Wikipedia,
		Matcher:   c.Linker,
		Store:     store,
	})

	return c
}

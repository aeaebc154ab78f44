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

package amazon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchXML = `<?xml version="1.0" encoding="UTF-8"?>
<ItemSearchResponse xmlns="http://webservices.amazon.com/AWSECommerceService/2011-08-01">
  <Items>
    <Request><IsValid>True</IsValid></Request>
    <Item>
      <ASIN>B000FRU0NU</ASIN>
      <DetailPageURL>https://www.amazon.com/dp/B000FRU0NU</DetailPageURL>
      <SmallImage><URL>https://img/s.jpg</URL></SmallImage>
      <MediumImage><URL>https://img/m.jpg</URL></MediumImage>
      <ItemAttributes>
        <Title>Halo 3</Title>
        <Platform>Xbox 360</Platform>
        <ReleaseDate>2007-09-25</ReleaseDate>
        <ProductGroup>Video Games</ProductGroup>
      </ItemAttributes>
      <OfferSummary>
        <LowestNewPrice><Amount>1499</Amount><FormattedPrice>$14.99</FormattedPrice></LowestNewPrice>
        <TotalNew>12</TotalNew>
        <TotalUsed>40</TotalUsed>
      </OfferSummary>
    </Item>
    <Item>
      <ASIN>0761557032</ASIN>
      <ItemAttributes>
        <Title>Halo 3: Prima Official Game Guide</Title>
        <ProductGroup>Book</ProductGroup>
      </ItemAttributes>
    </Item>
  </Items>
</ItemSearchResponse>`

const lookupXML = `<?xml version="1.0" encoding="UTF-8"?>
<ItemLookupResponse>
  <Items>
    <Request><IsValid>True</IsValid></Request>
    <Item>
      <ASIN>B000FRU0NU</ASIN>
      <DetailPageURL>https://www.amazon.com/dp/B000FRU0NU</DetailPageURL>
      <ItemAttributes>
        <Title>Halo 3</Title>
        <Platform>Xbox 360</Platform>
        <ReleaseDate>2007-09-25</ReleaseDate>
        <ProductGroup>Video Games</ProductGroup>
      </ItemAttributes>
      <OfferSummary>
        <LowestNewPrice><Amount>1499</Amount></LowestNewPrice>
        <LowestUsedPrice><Amount>399</Amount></LowestUsedPrice>
        <TotalNew>12</TotalNew>
        <TotalUsed>40</TotalUsed>
      </OfferSummary>
      <Offers>
        <Offer><OfferListing><Price><Amount>1999</Amount></Price></OfferListing></Offer>
      </Offers>
      <EditorialReviews>
        <EditorialReview><Source>Product Description</Source><Content>Finish the fight.</Content></EditorialReview>
      </EditorialReviews>
    </Item>
  </Items>
</ItemLookupResponse>`

const noMatchXML = `<ItemSearchResponse><Items><Request><IsValid>True</IsValid>
<Errors><Error><Code>AWS.ECommerceService.NoExactMatches</Code><Message>none</Message></Error></Errors>
</Request></Items></ItemSearchResponse>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Options{
		BaseURL:      server.URL + "/onca/xml",
		AssociateTag: "gamedex-20",
		Clock:        clockwork.NewFakeClockAt(time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)),
	})
}

func TestSearchItems(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "ItemSearch", q.Get("Operation"))
		assert.Equal(t, "VideoGames", q.Get("SearchIndex"))
		assert.Equal(t, "Halo 3", q.Get("Keywords"))
		assert.Equal(t, "14220161", q.Get("BrowseNode"))
		assert.Equal(t, "gamedex-20", q.Get("AssociateTag"))
		_, _ = w.Write([]byte(searchXML))
	})

	items, err := client.SearchItems(context.Background(), "Halo 3", 14220161, false)
	require.NoError(t, err)
	require.Len(t, items, 2)

	halo := items[0]
	assert.Equal(t, "B000FRU0NU", halo.ASIN)
	assert.Equal(t, catalog.NoID, halo.GBombID)
	assert.Equal(t, "Xbox 360", halo.Platform)
	assert.Equal(t, "2007-09-25", halo.ReleaseDate)
	assert.Equal(t, "09/25/2007", halo.CalendarDate)
	assert.Equal(t, "https://img/s.jpg", halo.SmallImage)
	assert.Equal(t, "https://img/m.jpg", halo.ThumbnailImage)
	assert.Equal(t, catalog.NoImage, halo.LargeImage)
	assert.False(t, halo.Filtered)
	assert.Nil(t, halo.Offers)

	guide := items[1]
	assert.True(t, guide.Filtered)
	assert.Equal(t, catalog.UnknownDate, guide.ReleaseDate)
	assert.Equal(t, catalog.UnknownCalendar, guide.CalendarDate)
	assert.Equal(t, "n/a", guide.Platform)
}

func TestSearch_NoBrowseNode(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("BrowseNode"))
		_, _ = w.Write([]byte(noMatchXML))
	})

	items, err := client.Search(context.Background(), "Nothing", 0, false)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearch_SuppressDuplicates(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(searchXML))
	})

	for range 3 {
		_, err := client.Search(context.Background(), "Halo 3", 0, true)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), requests.Load())

	_, err := client.Search(context.Background(), "Halo 3", 0, false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), requests.Load())
}

func TestSearch_APIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<ItemSearchResponse><Items><Request><Errors><Error>
			<Code>AWS.InvalidParameterValue</Code><Message>bad node</Message></Error></Errors></Request></Items></ItemSearchResponse>`))
	})

	_, err := client.Search(context.Background(), "Halo", 1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS.InvalidParameterValue")
}

func TestItemDetail(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "ItemLookup", r.URL.Query().Get("Operation"))
		assert.Equal(t, "B000FRU0NU", r.URL.Query().Get("ItemId"))
		_, _ = w.Write([]byte(lookupXML))
	})

	detail, err := client.ItemDetail(context.Background(), "B000FRU0NU")
	require.NoError(t, err)
	assert.Equal(t, "Halo 3", detail.Name)
	assert.Equal(t, "Finish the fight.", detail.Description)
	require.NotNil(t, detail.Offers)
	assert.Equal(t, "19.99", *detail.Offers.BuyNowPrice)

	_, err = client.ItemDetail(context.Background(), "B000FRU0NU")
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

func TestItemOffers(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(lookupXML))
	})

	offers, err := client.ItemOffers(context.Background(), "B000FRU0NU")
	require.NoError(t, err)
	assert.Equal(t, "19.99", *offers.BuyNowPrice)
	assert.Equal(t, "14.99", *offers.LowestNewPrice)
	assert.Equal(t, "3.99", *offers.LowestUsedPrice)
	assert.Equal(t, 12, offers.TotalNew)
	assert.Equal(t, 40, offers.TotalUsed)
	assert.Equal(t, "https://www.amazon.com/dp/B000FRU0NU", offers.ProductURL)
}

func TestItemDetail_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<ItemLookupResponse><Items><Request><IsValid>True</IsValid></Request></Items></ItemLookupResponse>`))
	})

	_, err := client.ItemDetail(context.Background(), "MISSING")
	require.Error(t, err)
}

func TestIsFiltered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		group    string
		title    string
		filtered bool
	}{
		{name: "game", group: "Video Games", title: "Halo 3", filtered: false},
		{name: "digital game", group: "Digital Video Games", title: "Halo 3", filtered: false},
		{name: "no group", group: "", title: "Halo 3", filtered: false},
		{name: "book", group: "Book", title: "Halo 3", filtered: true},
		{name: "guide title", group: "Video Games", title: "Halo 3 Strategy Guide", filtered: true},
		{name: "soundtrack", group: "Video Games", title: "Halo 3 Original Soundtrack", filtered: true},
		{name: "controller", group: "Video Games", title: "Halo 3 Wireless Controller", filtered: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := &Item{ItemAttributes: ItemAttributes{ProductGroup: tt.group, Title: tt.title}}
			assert.Equal(t, tt.filtered, IsFiltered(item))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	assert.Nil(t, formatPrice(Price{}))
	assert.Nil(t, formatPrice(Price{Amount: "abc"}))
	assert.Equal(t, "0.05", *formatPrice(Price{Amount: "5"}))
	assert.Equal(t, "120.00", *formatPrice(Price{Amount: "12000"}))
}

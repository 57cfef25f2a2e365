package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/osse101/CraftVault_Go/internal/domain"
	"github.com/osse101/CraftVault_Go/internal/metrics"
)

// Config holds the HTTP client settings.
type Config struct {
	BaseURL     string
	IconBaseURL string
	Timeout     time.Duration
}

// Client talks to an XIVAPI v2 compatible item-data service.
type Client struct {
	http        *http.Client
	baseURL     string
	iconBaseURL string
}

// NewClient creates a Provider backed by the HTTP API at cfg.BaseURL.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		iconBaseURL: strings.TrimRight(cfg.IconBaseURL, "/"),
	}
}

// Response shapes. Sheet references come back as nested objects keyed by
// "fields"; each query decodes only the fields it asked for.

type iconRef struct {
	PathHR1 string `json:"path_hr1"`
	Path    string `json:"path"`
}

type valueRef struct {
	Value int `json:"value"`
}

type namedRef struct {
	Fields struct {
		Name string `json:"Name"`
	} `json:"fields"`
}

type itemFields struct {
	Name      string    `json:"Name"`
	IconHD    *iconRef  `json:"IconHD"`
	Icon      *iconRef  `json:"Icon"`
	LevelItem *valueRef `json:"LevelItem"`
}

// iconPath returns the best icon path, preferring the HD variant.
func (f *itemFields) iconPath() string {
	for _, ref := range []*iconRef{f.IconHD, f.Icon} {
		if ref == nil {
			continue
		}
		if ref.PathHR1 != "" {
			return ref.PathHR1
		}
		if ref.Path != "" {
			return ref.Path
		}
	}
	return ""
}

func (f *itemFields) tier() int {
	if f.LevelItem == nil {
		return 0
	}
	return f.LevelItem.Value
}

func (c *Client) SearchItems(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if len(query) < MinQueryLength {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var resp struct {
		Results []struct {
			RowID  int        `json:"row_id"`
			Fields itemFields `json:"fields"`
		} `json:"results"`
	}
	if err := c.doGet(ctx, OpSearchItems, c.searchURL(query, sheetItem, fieldsItemSearch, limit), &resp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for _, row := range resp.Results {
		if row.RowID == 0 {
			continue
		}
		results = append(results, SearchResult{
			ID:      row.RowID,
			Name:    row.Fields.Name,
			Tier:    row.Fields.tier(),
			IconURL: c.iconURL(row.Fields.iconPath()),
		})
	}
	return results, nil
}

func (c *Client) GetItem(ctx context.Context, itemID int) (*ItemData, error) {
	var resp struct {
		RowID  int        `json:"row_id"`
		Fields itemFields `json:"fields"`
	}
	u := c.sheetURL(fmt.Sprintf(pathSheetItem, itemID), fieldsItemSheet)
	if err := c.doGet(ctx, OpGetItem, u, &resp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	return &ItemData{
		ID:      itemID,
		Name:    resp.Fields.Name,
		Tier:    resp.Fields.tier(),
		IconURL: c.iconURL(resp.Fields.iconPath()),
	}, nil
}

func (c *Client) GetRecipeFor(ctx context.Context, itemID int) (*domain.Recipe, error) {
	// Step 1: find the recipe row producing this item.
	var search struct {
		Results []struct {
			RowID  int `json:"row_id"`
			Fields struct {
				AmountResult int       `json:"AmountResult"`
				CraftType    *namedRef `json:"CraftType"`
			} `json:"fields"`
		} `json:"results"`
	}
	query := fmt.Sprintf("ItemResult=%d", itemID)
	if err := c.doGet(ctx, OpGetRecipeFor, c.searchURL(query, sheetRecipe, fieldsRecipeSearch, 1), &search); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if len(search.Results) == 0 || search.Results[0].RowID == 0 {
		return nil, domain.ErrRecipeNotFound
	}

	row := search.Results[0]
	craftCategory := ""
	if row.Fields.CraftType != nil {
		craftCategory = row.Fields.CraftType.Fields.Name
	}

	// Step 2: fetch the ingredient arrays from the recipe sheet.
	var sheet struct {
		Fields struct {
			Ingredient       []json.RawMessage `json:"Ingredient"`
			AmountIngredient []int             `json:"AmountIngredient"`
		} `json:"fields"`
	}
	u := c.sheetURL(fmt.Sprintf(pathSheetRecipe, row.RowID), fieldsRecipeSheet)
	if err := c.doGet(ctx, OpGetRecipeFor, u, &sheet); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	return &domain.Recipe{
		ID:            row.RowID,
		ResultItemID:  itemID,
		Yield:         row.Fields.AmountResult,
		CraftCategory: craftCategory,
		Ingredients:   decodeIngredients(sheet.Fields.Ingredient, sheet.Fields.AmountIngredient),
	}, nil
}

// decodeIngredients pairs the Ingredient and AmountIngredient arrays. Empty
// recipe slots come back as non-object entries or zero amounts and are
// dropped.
func decodeIngredients(refs []json.RawMessage, amounts []int) []domain.Ingredient {
	ingredients := make([]domain.Ingredient, 0, len(refs))
	for i, raw := range refs {
		if i >= len(amounts) || amounts[i] <= 0 {
			continue
		}
		var ref struct {
			RowID  int `json:"row_id"`
			Fields struct {
				Name string `json:"Name"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &ref); err != nil || ref.RowID == 0 {
			continue
		}
		ingredients = append(ingredients, domain.Ingredient{
			ItemID: ref.RowID,
			Name:   ref.Fields.Name,
			Amount: amounts[i],
		})
	}
	return ingredients
}

func (c *Client) GetGatheringInfo(ctx context.Context, itemID int) (*GatheringData, error) {
	// GatheringItem links the item to the gathering tables.
	gatheringItemID, err := c.searchRowID(ctx, OpGetGathering,
		fmt.Sprintf("Item=%d", itemID), sheetGatheringItem, fieldsRowID)
	if err != nil {
		return nil, err
	}

	// GatheringPointBase carries the node type (mining, logging, ...).
	var base struct {
		Results []struct {
			RowID  int `json:"row_id"`
			Fields struct {
				GatheringType *namedRef `json:"GatheringType"`
			} `json:"fields"`
		} `json:"results"`
	}
	query := fmt.Sprintf("Item.row_id=%d", gatheringItemID)
	err = c.doGet(ctx, OpGetGathering, c.searchURL(query, sheetGatheringPointBase, fieldsGatheringBase, 1), &base)
	if err != nil || len(base.Results) == 0 {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// Gatherable, but the node type is unknown.
		return &GatheringData{Method: MethodGathering}, nil
	}

	method := gatheringMethod(baseTypeName(base.Results[0].Fields.GatheringType))

	// GatheringPoint gives the zone.
	zone := ""
	var points struct {
		Results []struct {
			Fields struct {
				PlaceName *namedRef `json:"PlaceName"`
			} `json:"fields"`
		} `json:"results"`
	}
	query = fmt.Sprintf("GatheringPointBase.row_id=%d", base.Results[0].RowID)
	err = c.doGet(ctx, OpGetGathering, c.searchURL(query, sheetGatheringPoint, fieldsPlaceName, 1), &points)
	if err == nil && len(points.Results) > 0 && points.Results[0].Fields.PlaceName != nil {
		zone = points.Results[0].Fields.PlaceName.Fields.Name
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	return &GatheringData{Method: method, Zone: zone}, nil
}

func baseTypeName(ref *namedRef) string {
	if ref == nil {
		return ""
	}
	return ref.Fields.Name
}

// gatheringMethod folds the provider's node types into the labels shown to
// users.
func gatheringMethod(typeName string) string {
	switch typeName {
	case "Mining", "Quarrying":
		return MethodMining
	case "Logging", "Harvesting":
		return MethodBotany
	case "Fishing":
		return MethodFishing
	case "":
		return MethodGathering
	default:
		return typeName
	}
}

func (c *Client) GetVendorInfo(ctx context.Context, itemID int) (*VendorData, error) {
	shopID, err := c.searchRowID(ctx, OpGetVendorInfo,
		fmt.Sprintf("Item=%d", itemID), sheetGilShopItem, fieldsRowID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if shopID == 0 {
		// Not in a gil shop; check special shops (tomestones, scrips, ...).
		return c.getSpecialShop(ctx, itemID)
	}

	var shop struct {
		Fields struct {
			Name string `json:"Name"`
		} `json:"fields"`
	}
	shopName := ""
	u := c.sheetURL(fmt.Sprintf(pathSheetShop, shopID), fieldsShopName)
	if err := c.doGet(ctx, OpGetVendorInfo, u, &shop); err == nil {
		shopName = shop.Fields.Name
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	location := shopName
	if zone, err := c.shopZone(ctx, shopID); err == nil && zone != "" {
		location = zone
		if shopName != "" {
			location = fmt.Sprintf("%s (%s)", zone, shopName)
		}
	}

	return &VendorData{Shop: shopName, Location: location}, nil
}

// getSpecialShop resolves currency-exchange shops that sell the item.
func (c *Client) getSpecialShop(ctx context.Context, itemID int) (*VendorData, error) {
	var resp struct {
		Results []struct {
			RowID  int `json:"row_id"`
			Fields struct {
				Name string `json:"Name"`
			} `json:"fields"`
		} `json:"results"`
	}
	query := fmt.Sprintf("ItemReceive.row_id=%d", itemID)
	if err := c.doGet(ctx, OpGetVendorInfo, c.searchURL(query, sheetSpecialShop, fieldsShopSearch, 1), &resp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, domain.ErrNotFound
	}

	name := resp.Results[0].Fields.Name
	if name == "" {
		name = "Special Shop"
	}
	return &VendorData{Shop: name, Location: name}, nil
}

// shopZone finds the zone of the NPC selling from the given gil shop. Best
// effort: any failure just leaves the zone empty.
func (c *Client) shopZone(ctx context.Context, shopID int) (string, error) {
	npcID, err := c.searchRowID(ctx, OpGetVendorInfo,
		fmt.Sprintf("GilShop.row_id=%d", shopID), sheetNPC, fieldsRowID)
	if err != nil {
		return "", err
	}

	var levels struct {
		Results []struct {
			Fields struct {
				Territory *struct {
					Fields struct {
						PlaceName *namedRef `json:"PlaceName"`
					} `json:"fields"`
				} `json:"Territory"`
			} `json:"fields"`
		} `json:"results"`
	}
	query := fmt.Sprintf("ENpcResidents.row_id=%d", npcID)
	if err := c.doGet(ctx, OpGetVendorInfo, c.searchURL(query, sheetLevel, fieldsTerritory, 1), &levels); err != nil {
		return "", err
	}
	if len(levels.Results) == 0 {
		return "", nil
	}
	territory := levels.Results[0].Fields.Territory
	if territory == nil || territory.Fields.PlaceName == nil {
		return "", nil
	}
	return territory.Fields.PlaceName.Fields.Name, nil
}

func (c *Client) FetchIcon(ctx context.Context, iconURL string) ([]byte, error) {
	u := iconURL
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = c.iconURL(u)
	}
	if u == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidIconPath)
	}

	var body []byte
	err := c.get(ctx, OpFetchIcon, u, func(r io.Reader) error {
		var readErr error
		if body, readErr = io.ReadAll(r); readErr != nil {
			return fmt.Errorf("%s: %w", ErrMsgReadBody, readErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.IconsFetched.Inc()
	return body, nil
}

// searchRowID runs a single-result search and returns the row_id, or
// domain.ErrNotFound when the search comes back empty.
func (c *Client) searchRowID(ctx context.Context, op, query, sheets, fields string) (int, error) {
	var resp struct {
		Results []struct {
			RowID int `json:"row_id"`
		} `json:"results"`
	}
	if err := c.doGet(ctx, op, c.searchURL(query, sheets, fields, 1), &resp); err != nil {
		return 0, err
	}
	if len(resp.Results) == 0 || resp.Results[0].RowID == 0 {
		return 0, domain.ErrNotFound
	}
	return resp.Results[0].RowID, nil
}

func (c *Client) searchURL(query, sheets, fields string, limit int) string {
	params := url.Values{}
	params.Set("query", query)
	params.Set("sheets", sheets)
	params.Set("fields", fields)
	params.Set("limit", strconv.Itoa(limit))
	return c.baseURL + pathSearch + "?" + params.Encode()
}

func (c *Client) sheetURL(path, fields string) string {
	params := url.Values{}
	params.Set("fields", fields)
	return c.baseURL + path + "?" + params.Encode()
}

func (c *Client) iconURL(path string) string {
	if path == "" {
		return ""
	}
	return c.iconBaseURL + "/" + strings.TrimLeft(path, "/")
}

// doGet fetches rawURL and decodes the JSON body into dest. 404 responses
// become domain.ErrNotFound; transport failures, 5xx responses and malformed
// bodies become a domain.TransientError after retries are exhausted.
func (c *Client) doGet(ctx context.Context, op, rawURL string, dest any) error {
	return c.get(ctx, op, rawURL, func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(dest); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgDecodeResponse, err)
		}
		return nil
	})
}

func (c *Client) get(ctx context.Context, op, rawURL string, readBody func(io.Reader) error) error {
	metrics.ProviderRequests.WithLabelValues(op).Inc()

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.http.Do(req)
			if err != nil {
				return fmt.Errorf("%s: %w", ErrMsgRequestFailed, err)
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusNotFound:
				return retry.Unrecoverable(domain.ErrNotFound)
			case resp.StatusCode != http.StatusOK:
				return fmt.Errorf("%s: %d", ErrMsgBadStatus, resp.StatusCode)
			}
			return readBody(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(maxRetryAttempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}

	metrics.ProviderErrors.WithLabelValues(op).Inc()
	return domain.NewTransientError(op, err)
}

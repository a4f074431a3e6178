package shop

const (
	// MinQuantity 数量の下限
	MinQuantity = 1
	// MaxQuantity 数量の上限
	MaxQuantity = 99
	// MinPromotionContentLength 宣伝文の最小長
	MinPromotionContentLength = 10
	// MaxPromotionContentLength 宣伝文の最大長
	MaxPromotionContentLength = 500
)

// Product ショップ商品の定義
type Product struct {
	ID                       string
	Name                     string
	Price                    int64
	RequiresDiscordID        bool  // 購入時にDiscord IDの指定が必要
	AllowsQuantity           bool  // 数量指定を許可（[1,99]に丸める）
	RequiresReview           bool  // 管理者の承認待ちオーダーを作成する
	RequiresPromotionContent bool  // 宣伝文（10〜500文字）が必要
	InstantRewardAmount      int64 // 購入直後に付与されるコイン（1個あたり）
}

// productCatalog 静的な商品カタログ
var productCatalog = []Product{
	{
		ID:                  "raffle_ticket",
		Name:                "抽選チケット",
		Price:               300,
		AllowsQuantity:      true,
		InstantRewardAmount: 30,
	},
	{
		ID:    "custom_badge",
		Name:  "カスタムバッジ",
		Price: 500,
	},
	{
		ID:                "discord_role",
		Name:              "Discord限定ロール",
		Price:             2000,
		RequiresDiscordID: true,
		RequiresReview:    true,
	},
	{
		ID:                       "promo_slot",
		Name:                     "宣伝枠",
		Price:                    3000,
		RequiresReview:           true,
		RequiresPromotionContent: true,
	},
}

// Products 全商品定義を返す
func Products() []Product {
	products := make([]Product, len(productCatalog))
	copy(products, productCatalog)
	return products
}

// ProductByID IDで商品定義を取得
func ProductByID(id string) (Product, error) {
	for _, p := range productCatalog {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// NormalizeQuantity 数量を正規化する
// 数量指定を許可しない商品は常に1。許可する商品は[1,99]に丸める
func (p Product) NormalizeQuantity(quantity int) int {
	if !p.AllowsQuantity {
		return MinQuantity
	}
	if quantity < MinQuantity {
		return MinQuantity
	}
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}

// ValidatePurchase 購入パラメータを検証する
func (p Product) ValidatePurchase(discordID, promotionContent string) error {
	if p.RequiresDiscordID && discordID == "" {
		return ErrDiscordIDRequired
	}
	if p.RequiresPromotionContent {
		if promotionContent == "" {
			return ErrPromotionContentRequired
		}
		length := len([]rune(promotionContent))
		if length < MinPromotionContentLength || length > MaxPromotionContentLength {
			return ErrPromotionContentLength
		}
	}
	return nil
}

package domain

// GeneratedReadingMaterial is the aggregate produced by one reading-material
// generation unit: a passage plus the questions written against it. It is
// single use and never persisted as its own document; the linker guarantees
// every question's contentAssetId equals the passage's assetId before the
// aggregate is handed on.
type GeneratedReadingMaterial struct {
	PassageAsset PassageAsset  `json:"passageAsset"`
	Questions    []AnyQuestion `json:"questions_list"`
}

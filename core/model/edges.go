package model

import (
	"encoding/json"
	"sort"

	"github.com/YuminosukeSato/scifeat/pkg/errors"
)

// BinEdges は学習済み離散化器の境界を表す構造体（JSON エクスポート用）
type BinEdges struct {
	// ModelType は変換器の種類（JenksDiscretiser 等）
	ModelType string `json:"model_type"`

	// Version はフォーマットのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Edges は変数名ごとの境界。各スライスは単調非減少
	Edges map[string][]float64 `json:"binner_dict"`

	// FeatureNamesIn は学習時の列名（順序付き）
	FeatureNamesIn []string `json:"feature_names_in"`

	// Hyperparameters は変換器のハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// IsFitted は変換器が学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はBinEdgesをJSON形式にシリアライズ
func (be *BinEdges) ToJSON() ([]byte, error) {
	return json.MarshalIndent(be, "", "  ")
}

// FromJSON はJSON形式からBinEdgesをデシリアライズ
func (be *BinEdges) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, be); err != nil {
		return errors.Wrap(err, "failed to decode bin edges")
	}
	return nil
}

// Validate はBinEdgesの妥当性を検証
func (be *BinEdges) Validate() error {
	if be.ModelType == "" {
		return errors.New("model_type is required")
	}
	if be.Version == "" {
		return errors.New("version is required")
	}
	if !be.IsFitted && len(be.Edges) > 0 {
		return errors.New("unfitted transformer should not have edges")
	}
	if be.IsFitted && len(be.Edges) == 0 {
		return errors.New("fitted transformer must have edges")
	}

	known := make(map[string]bool, len(be.FeatureNamesIn))
	for _, name := range be.FeatureNamesIn {
		known[name] = true
	}
	for _, name := range be.Variables() {
		edges := be.Edges[name]
		if !known[name] {
			return errors.Newf("variable %q is not in feature_names_in", name)
		}
		if len(edges) < 2 {
			return errors.Newf("variable %q needs at least 2 edges, got %d", name, len(edges))
		}
		if !sort.Float64sAreSorted(edges) {
			return errors.Newf("edges of variable %q are not non-decreasing", name)
		}
	}
	return nil
}

// Variables はエッジを持つ変数名をソートして返す
func (be *BinEdges) Variables() []string {
	names := make([]string, 0, len(be.Edges))
	for name := range be.Edges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone はBinEdgesのディープコピーを作成
func (be *BinEdges) Clone() *BinEdges {
	clone := &BinEdges{
		ModelType:       be.ModelType,
		Version:         be.Version,
		IsFitted:        be.IsFitted,
		Edges:           make(map[string][]float64, len(be.Edges)),
		FeatureNamesIn:  append([]string(nil), be.FeatureNamesIn...),
		Hyperparameters: make(map[string]interface{}, len(be.Hyperparameters)),
	}
	for k, v := range be.Edges {
		clone.Edges[k] = append([]float64(nil), v...)
	}
	for k, v := range be.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	return clone
}

package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

// ManifestVersion は制作マニフェストのスキーマ版数です。
const ManifestVersion = "4.0"

// Manifest は manifest 形式プロンプトのルート文書です。
// リモートモデルの応答を duck-typed のまま信用せず、この型でパースして
// 検証します。
type Manifest struct {
	Production ProductionManifest `json:"veo_production_manifest"`
}

// ProductionManifest は1シーン分の動画生成指示書の全体です。
type ProductionManifest struct {
	Version          string            `json:"version"`
	ShotSummary      string            `json:"shot_summary"`
	Description      string            `json:"description"`
	GlobalSettings   GlobalSettings    `json:"global_settings"`
	DirectorMandates DirectorMandates  `json:"director_mandates"`
	AestheticFilter  AestheticFilter   `json:"aesthetic_filter"`
	TimelineScript   []TimelineSegment `json:"timeline_script"`
}

type GlobalSettings struct {
	InputAssets          InputAssets          `json:"input_assets"`
	OutputSpecifications OutputSpecifications `json:"output_specifications"`
	RenderingPipeline    RenderingPipeline    `json:"rendering_pipeline"`
}

type InputAssets struct {
	ReferenceImage string `json:"reference_image"`
}

type OutputSpecifications struct {
	Resolution      string          `json:"resolution"`
	AspectRatioLock AspectRatioLock `json:"aspect_ratio_lock"`
	ColorSpace      string          `json:"color_space"`
	DynamicRange    string          `json:"dynamic_range"`
}

type AspectRatioLock struct {
	Enabled bool   `json:"enabled"`
	Comment string `json:"comment"`
}

type RenderingPipeline struct {
	Engine         string `json:"engine"`
	LightTransport string `json:"light_transport"`
	ShadowQuality  string `json:"shadow_quality"`
}

type DirectorMandates struct {
	PositiveMandates []string `json:"positive_mandates"`
	NegativeMandates []string `json:"negative_mandates"`
}

type AestheticFilter struct {
	Name               string             `json:"name"`
	VisualMandates     VisualMandates     `json:"visual_mandates"`
	PerformanceMandate PerformanceMandate `json:"performance_mandates"`
}

type VisualMandates struct {
	LightingStyle    string `json:"lighting_style"`
	Atmosphere       string `json:"atmosphere"`
	StyleDescription string `json:"style_description"`
	ColorPalette     string `json:"color_palette"`
}

type PerformanceMandate struct {
	Mood          string `json:"mood"`
	PhysicsEngine string `json:"physics_engine"`
}

// TimelineSegment はタイムライン上の1区間の演出指示です。
type TimelineSegment struct {
	TimeStart   string           `json:"time_start"`
	TimeEnd     string           `json:"time_end"`
	Description string           `json:"description"`
	Elements    TimelineElements `json:"elements"`
}

type TimelineElements struct {
	Visuals    SegmentVisuals `json:"visuals"`
	Camera     SegmentCamera  `json:"camera"`
	AudioScape AudioScape     `json:"audio_scape"`
	Overlays   []string       `json:"overlays_and_graphics"`
}

type SegmentVisuals struct {
	SubjectAction    string `json:"subject_action"`
	BackgroundAction string `json:"background_action"`
	// ConsistencyCheck は 0s/2s/4s/6s の整合性チェック定型文を必ず含みます。
	ConsistencyCheck string `json:"consistency_check"`
}

type SegmentCamera struct {
	ShotComposition ShotComposition `json:"shot_composition"`
	CameraMovement  CameraMovement  `json:"camera_movement"`
}

type ShotComposition struct {
	ShotType string `json:"shot_type"`
	Angle    string `json:"angle"`
}

type CameraMovement struct {
	PrimaryMovement     string `json:"primary_movement"`
	MovementDescription string `json:"movement_description"`
	Speed               string `json:"speed"`
}

type AudioScape struct {
	Dialogue DialogueTranscript `json:"dialogue"`
	SFX      []string           `json:"sfx"`
	Ambient  string             `json:"ambient"`
}

type DialogueTranscript struct {
	Transcript string `json:"transcript"`
}

// NewManifestSkeleton はシーンの台本フィールドを流し込んだ雛形を生成します。
// リモートへ渡すスキーマテンプレートの実体であり、空欄はAI側が埋めます。
func NewManifestSkeleton(scene domain.Scene) Manifest {
	return Manifest{
		Production: ProductionManifest{
			Version:     ManifestVersion,
			ShotSummary: scene.Visual,
			Description: "The ultimate industrial-grade production manifest. V" + ManifestVersion + ".",
			GlobalSettings: GlobalSettings{
				InputAssets: InputAssets{ReferenceImage: "Start Frame"},
				OutputSpecifications: OutputSpecifications{
					Resolution: "1080p",
					AspectRatioLock: AspectRatioLock{
						Enabled: true,
						Comment: "Forces all elements and actions to respect the intended aspect ratio.",
					},
					ColorSpace:   "Rec. 2020",
					DynamicRange: "HDR",
				},
				RenderingPipeline: RenderingPipeline{
					Engine:         "Physically-Based Rendering (PBR)",
					LightTransport: "Path Tracing",
					ShadowQuality:  "High-resolution shadow maps",
				},
			},
			DirectorMandates: DirectorMandates{
				PositiveMandates: []string{
					"The video MUST start with the provided start frame.",
					"Maintenance of texture, lighting, and resolution from the start frame is critical at " + ConsistencyCheckpoints + ".",
				},
				NegativeMandates: []string{
					"NO smooth or stable camera motion if action is chaotic.",
					"NO morphing of character features.",
					"NO lowering of resolution or quality.",
				},
			},
			AestheticFilter: AestheticFilter{
				Name: "Cinematic Hyper-Realism",
				PerformanceMandate: PerformanceMandate{
					PhysicsEngine: "Hyper-realistic",
				},
			},
			TimelineScript: []TimelineSegment{
				{
					TimeStart:   "0.0s",
					TimeEnd:     "8.0s",
					Description: scene.Visual,
					Elements: TimelineElements{
						Visuals: SegmentVisuals{
							SubjectAction:    scene.Action,
							ConsistencyCheck: ConsistencyCheckMandate,
						},
						Camera: SegmentCamera{
							CameraMovement: CameraMovement{PrimaryMovement: scene.Camera},
						},
						AudioScape: AudioScape{
							Dialogue: DialogueTranscript{Transcript: scene.Dialogue},
						},
						Overlays: []string{},
					},
				},
			},
		},
	}
}

// Encode はマニフェストを整形済みJSONテキストに変換します。
func (m Manifest) Encode() (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("マニフェストのエンコードに失敗しました: %w", err)
	}
	return string(data), nil
}

// ParseManifest はマニフェストJSONをパースし、契約違反をフェイルクローズで
// 拒否します。バージョン・タイムライン・整合性チェック定型文が必須です。
func ParseManifest(raw string) (*Manifest, error) {
	rawJSON := domain.ExtractJSONBlock(raw)

	var m Manifest
	if err := json.Unmarshal([]byte(rawJSON), &m); err != nil {
		return nil, &domain.MalformedResponseError{Reason: "マニフェストのJSONデコード失敗", Err: err}
	}

	p := m.Production
	if p.Version == "" {
		return nil, &domain.MalformedResponseError{Reason: "マニフェストに version がありません"}
	}
	if len(p.TimelineScript) == 0 {
		return nil, &domain.MalformedResponseError{Reason: "timeline_script が空です"}
	}
	for i, seg := range p.TimelineScript {
		if !strings.Contains(seg.Elements.Visuals.ConsistencyCheck, ConsistencyCheckpoints) {
			return nil, &domain.MalformedResponseError{
				Reason: fmt.Sprintf("timeline_script[%d] の consistency_check にチェックポイント (%s) がありません", i, ConsistencyCheckpoints),
			}
		}
	}
	return &m, nil
}
